package robinhood

import (
	"errors"
	"fmt"
	"net/http"
)

const errorTitle = "RobinhoodAPI"

type ErrorType string

const (
	PreconditionErrorT ErrorType = "PreconditionError"
	LookupErrorT       ErrorType = "LookupError"
	RequestErrorT      ErrorType = "RequestError"
	UpstreamErrorT     ErrorType = "UpstreamError"
	SerDeErrorT        ErrorType = "SerDeError"
	AuthErrorT         ErrorType = "AuthError"
	InternalErrorT     ErrorType = "InternalError"
)

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrNoAccessToken = errors.New("token response carries no access_token")
	ErrAssetNotFound = errors.New("unable to find asset")
	ErrNotTradable   = errors.New("asset is not tradable")
)

// Error ошибка клиента с указанием типа и операции, на которой она возникла.
type Error struct {
	Type     ErrorType
	Err      error
	Endpoint string
}

func NewError(t ErrorType, e error) *Error {
	return &Error{Type: t, Err: e}
}

func preconditionf(format string, args ...any) *Error {
	return NewError(PreconditionErrorT, fmt.Errorf(format, args...))
}

// SetEndpoint возвращает копию ошибки с указанным именем операции.
func (e *Error) SetEndpoint(endpoint string) *Error {
	newError := *e
	newError.Endpoint = endpoint

	return &newError
}

func (e *Error) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("%s: %s: %s: %s", errorTitle, e.Endpoint, e.Type, e.Err)
	}

	return fmt.Sprintf("%s: %s: %s", errorTitle, e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UpstreamStatus возвращает HTTP статус ответа, если ошибка пришла от сервера.
func (e *Error) UpstreamStatus() int {
	var upstream *UpstreamError
	if !errors.As(e.Err, &upstream) {
		return 0
	}

	return upstream.Status
}

// UpstreamError ответ сервера со статусом вне диапазона 2xx.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (u *UpstreamError) Error() string {
	if len(u.Body) == 0 {
		return fmt.Sprintf("%d %s", u.Status, http.StatusText(u.Status))
	}

	return fmt.Sprintf("%d %s: %s", u.Status, http.StatusText(u.Status), u.Body)
}

// IsPrecondition сообщает, что вызов был отклонен до обращения к сети.
func IsPrecondition(err error) bool {
	return isType(err, PreconditionErrorT)
}

func IsUpstream(err error) bool {
	return isType(err, UpstreamErrorT)
}

func IsLookup(err error) bool {
	return isType(err, LookupErrorT)
}

func isType(err error, t ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Type == t
}
