// Package clientip determines the address of the client behind a request.
//
// Forwarding headers are spoofable, so they are only honored when the
// service runs behind a proxy that sets them (trustProxy).
package clientip
