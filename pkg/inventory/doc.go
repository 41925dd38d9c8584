// Package inventory holds the state behind the grocery inventory screen: the
// last fetched item list, the form draft, the create/edit mode and the search
// filter. Every successful write is followed by a full reload, so the backend
// stays the single source of truth and the local list is a disposable cache.
//
// A ViewModel is safe for concurrent use. Network calls run without holding
// its lock, which lets a UI dispatch them from background goroutines; when
// reloads overlap, the last one to complete wins.
package inventory
