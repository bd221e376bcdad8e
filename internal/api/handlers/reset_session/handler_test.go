package reset_session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

type fakeStore struct {
	resets int
}

func (f *fakeStore) Reset() {
	f.resets++
}

func TestHandle(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store, logger.NewNop())

	for i := 1; i <= 2; i++ {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, i, store.resets)
	}
}
