package handlers

import (
	"net/http"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

func verifiedToken(uid, email, name string) *auth.Token {
	return &auth.Token{
		UID:    uid,
		Claims: map[string]interface{}{"email": email, "name": name},
	}
}

func TestFirebaseLoginCreatesAccountOnFirstSignIn(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(gateway.NewPostgresProfileGateway(db))

	c, rec := newTestContext(http.MethodPost, "/auth/firebase-login", 0)
	c.Set("firebaseToken", verifiedToken("fb-uid-1", "ada@example.com", "Ada"))

	assert.NoError(t, h.FirebaseLogin(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])

	var user models.User
	assert.NoError(t, db.Where("firebase_uid = ?", "fb-uid-1").First(&user).Error)
	assert.Equal(t, "ada@example.com", user.Email)

	// a second sign-in reuses the account
	c, rec = newTestContext(http.MethodPost, "/auth/firebase-login", 0)
	c.Set("firebaseToken", verifiedToken("fb-uid-1", "ada@example.com", "Ada"))
	assert.NoError(t, h.FirebaseLogin(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&models.User{}).Where("firebase_uid = ?", "fb-uid-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFirebaseLoginLinksExistingEmailAccount(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(gateway.NewPostgresProfileGateway(db))
	existing := createTestUser(t, db, "grace")

	c, rec := newTestContext(http.MethodPost, "/auth/firebase-login", 0)
	c.Set("firebaseToken", verifiedToken("fb-uid-2", existing.Email, "Grace"))

	assert.NoError(t, h.FirebaseLogin(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	assert.NoError(t, db.First(&user, existing.ID).Error)
	assert.Equal(t, "fb-uid-2", user.FirebaseUID)
}

// FirebaseLogin trusts only the token the verification middleware stored in
// the request context; without it the request is rejected.
func TestFirebaseLoginRequiresVerifiedToken(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(gateway.NewPostgresProfileGateway(db))

	c, _ := newTestContext(http.MethodPost, "/auth/firebase-login", 0)

	err := h.FirebaseLogin(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
