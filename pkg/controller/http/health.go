package http

import (
	"net/http"

	"github.com/m-mizutani/localstamp/pkg/domain/model"
	"github.com/m-mizutani/localstamp/pkg/domain/types"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &model.HealthStatus{
		Status:  "healthy",
		Service: "localstamp",
		Version: types.Version,
	})
}
