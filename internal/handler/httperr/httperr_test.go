//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    string
		wantMessage string
		wantMissing []string
	}{
		{
			name:        "not found",
			err:         fmt.Errorf("%w: CS101", errs.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantKind:    "NotFound",
			wantMessage: "course not found: CS101",
		},
		{
			name:       "capacity exceeded",
			err:        errs.ErrCapacityExceeded,
			wantStatus: http.StatusConflict,
			wantKind:   "CapacityExceeded",
		},
		{
			name:        "prerequisites carry the missing list",
			err:         &errs.PrerequisitesNotMetError{CourseID: "CS201", StudentID: "s1", Missing: []string{"CS101"}},
			wantStatus:  http.StatusUnprocessableEntity,
			wantKind:    "PrerequisitesNotMet",
			wantMissing: []string{"CS101"},
		},
		{
			name:        "internal hides the cause",
			err:         errors.New("pq: relation does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantKind:    "Internal",
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			httperr.Abort(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, c.IsAborted())

			var body httperr.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantKind, body.Error.Kind)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Error.Message)
			}
			assert.Equal(t, tt.wantMissing, body.Error.MissingPrerequisites)
		})
	}
}
