package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSignOutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSignOuter(ctrl)

	tests := []struct {
		name         string
		sessionID    string
		mockSetup    func()
		expectedCode int
	}{
		{
			name:      "session cookie",
			sessionID: "sid-1",
			mockSetup: func() {
				mockSvc.EXPECT().SignOut(gomock.Any(), "sid-1").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "no session cookie",
			mockSetup: func() {
				mockSvc.EXPECT().SignOut(gomock.Any(), "").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:      "internal error",
			sessionID: "sid-1",
			mockSetup: func() {
				mockSvc.EXPECT().SignOut(gomock.Any(), "sid-1").Return(errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/sign-out", nil)
			if tt.sessionID != "" {
				req.AddCookie(&http.Cookie{Name: models.CookieSessionID, Value: tt.sessionID})
			}
			w := httptest.NewRecorder()

			NewSignOutHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusNoContent {
				for _, c := range w.Result().Cookies() {
					assert.Empty(t, c.Value)
					assert.Equal(t, -1, c.MaxAge)
				}
				assert.Len(t, w.Result().Cookies(), 2)
			}
		})
	}
}
