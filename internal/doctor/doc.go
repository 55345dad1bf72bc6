// Package doctor inspects what setup installed for each tool and reports
// every managed path as present, missing or suspicious, without changing
// anything.
package doctor
