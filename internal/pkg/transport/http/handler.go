package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
)

// DecodeRequestFunc extracts a typed request from the incoming HTTP request.
type DecodeRequestFunc func(r *http.Request) (interface{}, error)

// EncodeResponseFunc writes the endpoint response to the wire.
type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc glues a go-kit endpoint to the router: decode, invoke,
// encode, with all failures funneled through ErrorResponse.
func MakeHandlerFunc(ep endpoint.Endpoint, dec DecodeRequestFunc, enc EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := dec(r)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		if err := enc(ctx, w, response); err != nil {
			ErrorResponse(ctx, err, w)
		}
	}
}
