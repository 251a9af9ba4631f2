// Package mobile is the surface bound into the iOS and Android apps.
//
// Every operation returns a result value with an integer Status instead of a
// Go error: StatusOK on success, StatusGeneral for local failures and
// StatusNetworking when the directory could not be reached or rejected the
// call. Sessions cross the boundary as JSON. Callbacks registered here are
// invoked from a background goroutine, one event at a time, in publish order.
package mobile
