package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"
)

const maxOperationLimit = 500

func operationsHandler(operationStr core.IOperationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user"`
			Limit  int    `json:"limit"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		if params.Limit <= 0 || params.Limit > maxOperationLimit {
			params.Limit = maxOperationLimit
		}

		operations, e := operationStr.List(ctx, params.UserID, params.Limit)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		render.JSON(w, operations)
	}
}
