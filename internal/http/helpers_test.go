package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/highlights-keeper/internal/library"
)

func TestRespondLibraryError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cause := errors.New("disk I/O error")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantCode   string
	}{
		{"policy required", library.ErrPolicyRequired, http.StatusConflict, "highlights already exist: choose merge or overwrite", CodeNeedsConfirmation},
		{"unknown policy", fmt.Errorf("%w: %q", library.ErrUnknownPolicy, "x"), http.StatusBadRequest, "", CodeInvalidPolicy},
		{"invalid edit", library.ErrInvalidEdit, http.StatusBadRequest, "", CodeInvalidEdit},
		{"group not found", library.ErrGroupNotFound, http.StatusNotFound, "title not found", ""},
		{"parse failure", &library.OpError{Op: library.OpParse, Err: cause}, http.StatusBadRequest, "failed to process file", ""},
		{"load failure", &library.OpError{Op: library.OpLoad, Err: cause}, http.StatusInternalServerError, "failed to load", ""},
		{"import failure", &library.OpError{Op: library.OpImport, Err: cause}, http.StatusInternalServerError, "failed to save highlights", ""},
		{"unexpected error", cause, http.StatusInternalServerError, "internal server error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondLibraryError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			response := decodeJSON(t, w)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, response["error"])
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, response["code"])
			}
			assert.NotContains(t, w.Body.String(), "disk I/O error")
		})
	}
}
