package roman

import (
	"errors"
	"fmt"
)

// Kind classifies why a conversion failed.
type Kind uint8

const (
	KindNone Kind = iota
	KindNotAnInteger
	KindOutOfRange
	KindInvalidCharacter
	KindInvalidRepetition
	KindInvalidSubtraction
)

var (
	ErrNotAnInteger       = errors.New("roman: not an integer")
	ErrOutOfRange         = errors.New("roman: out of range")
	ErrInvalidCharacter   = errors.New("roman: invalid character")
	ErrInvalidRepetition  = errors.New("roman: invalid repetition")
	ErrInvalidSubtraction = errors.New("roman: invalid subtraction")
)

func (k Kind) String() string {
	switch k {
	case KindNotAnInteger:
		return "not_an_integer"
	case KindOutOfRange:
		return "out_of_range"
	case KindInvalidCharacter:
		return "invalid_character"
	case KindInvalidRepetition:
		return "invalid_repetition"
	case KindInvalidSubtraction:
		return "invalid_subtraction"
	default:
		return "none"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotAnInteger:
		return ErrNotAnInteger
	case KindOutOfRange:
		return ErrOutOfRange
	case KindInvalidCharacter:
		return ErrInvalidCharacter
	case KindInvalidRepetition:
		return ErrInvalidRepetition
	case KindInvalidSubtraction:
		return ErrInvalidSubtraction
	default:
		return nil
	}
}

// Error is the only error type returned by this package.
// Offset is the byte offset into the normalized input, or -1.
type Error struct {
	Kind   Kind
	Input  string
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	prefix := "roman: conversion failed"
	if s := e.Kind.sentinel(); s != nil {
		prefix = s.Error()
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %q at offset %d: %s", prefix, e.Input, e.Offset, e.Msg)
	}
	if e.Input != "" {
		return fmt.Sprintf("%s: %q: %s", prefix, e.Input, e.Msg)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the Kind carried by err, or KindNone.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

func newError(kind Kind, input string, offset int, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Input:  input,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}
