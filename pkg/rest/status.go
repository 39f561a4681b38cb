package rest

import (
	"fmt"
	"net/http"
)

type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

func StatusCodeRangeOf(statusCode int) StatusCodeRange {
	switch {
	case statusCode < 100:
		return StatusUnknown
	case statusCode < 200:
		return Status1xx
	case statusCode < 300:
		return Status2xx
	case statusCode < 400:
		return Status3xx
	case statusCode < 500:
		return Status4xx
	case statusCode < 600:
		return Status5xx
	default:
		return StatusUnknown
	}
}

func statusOf(resp *http.Response) StatusCodeRange {
	return StatusCodeRangeOf(resp.StatusCode)
}
