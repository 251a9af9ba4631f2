package domain

import (
	interfaces "pairing/internal/domain/interfaces"
	types "pairing/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID           = types.SessionID
	ParticipantID       = types.ParticipantID
	PublicKey           = types.PublicKey
	KeyPair             = types.KeyPair
	Session             = types.Session
	SessionKey          = types.SessionKey
	JoinRequest         = types.JoinRequest
	AckRequest          = types.AckRequest
	ParticipantsRequest = types.ParticipantsRequest
	DeleteRequest       = types.DeleteRequest
	KeysResponse        = types.KeysResponse
	AckResponse         = types.AckResponse
	ErrorResponse       = types.ErrorResponse
	NetworkingError     = types.NetworkingError
	GeneralError        = types.GeneralError
	ErrorKind           = types.ErrorKind
	LogRecord           = types.LogRecord
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	DirectoryClient  = interfaces.DirectoryClient
	Transport        = interfaces.Transport
	TransportFactory = interfaces.TransportFactory
	SessionService   = interfaces.SessionService
	KeyGenerator     = interfaces.KeyGenerator
	KeyStore         = interfaces.KeyStore
)

const (
	UnknownHTTPStatus = types.UnknownHTTPStatus

	KindNone       = types.KindNone
	KindGeneral    = types.KindGeneral
	KindNetworking = types.KindNetworking
)

var (
	NewPublicKey = types.NewPublicKey
	Generalf     = types.Generalf
	Classify     = types.Classify
	IsNetworking = types.IsNetworking
	IsGeneral    = types.IsGeneral
	HTTPStatusOf = types.HTTPStatusOf
)
