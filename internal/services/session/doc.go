// Package session composes directory calls into the operations the mobile
// boundary exposes: start, join, ack, participants, delete and refresh.
//
// Input validation happens here and fails with *domain.GeneralError before
// any request is made. Remote failures pass through as
// *domain.NetworkingError. No session state is kept between calls.
package session
