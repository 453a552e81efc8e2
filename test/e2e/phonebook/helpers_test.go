package phonebook_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/app"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

/*
 * Common constants and helpers for phonebook end-to-end tests. The API
 * server is faked in-process with httptest: it implements the same
 * contract as the real service (form-encoded login, JWT access tokens,
 * TOTP two-factor, contact CRUD and search) so the full application can
 * be exercised against it without a network.
 */

const (
	testEmail    = "alice@example.com"
	testPassword = "Sup3rSecret!"
)

type fakeUser struct {
	id         int
	email      string
	password   string
	totpSecret string
	totpActive bool
}

// fakeAPI is an in-memory stand-in for the phonebook service.
type fakeAPI struct {
	mu       sync.Mutex
	users    map[string]*fakeUser
	contacts map[int]contactRecord
	nextUser int
	nextID   int
	tokenTTL time.Duration

	// meCalls counts GET /api/users/me requests across the server's
	// lifetime, so tests can assert how often the client fetched the
	// profile.
	meCalls atomic.Int64

	server *httptest.Server
}

type contactRecord struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func startFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{
		users:    make(map[string]*fakeUser),
		contacts: make(map[int]contactRecord),
		tokenTTL: time.Hour,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", api.handleLogin)
	mux.HandleFunc("POST /api/register", api.handleRegister)
	mux.HandleFunc("GET /api/users/me", api.handleMe)
	mux.HandleFunc("POST /api/2fa/setup", api.handleSetup2FA)
	mux.HandleFunc("POST /api/2fa/setup/verify", api.handleVerifySetup)
	mux.HandleFunc("POST /api/2fa/verify", api.handleVerifyLogin)
	mux.HandleFunc("POST /api/contacts/", api.handleCreateContact)
	mux.HandleFunc("GET /api/contacts/", api.handleListContacts)
	mux.HandleFunc("GET /api/contacts/{id}", api.handleGetContact)
	mux.HandleFunc("PUT /api/contacts/{id}", api.handleUpdateContact)
	mux.HandleFunc("DELETE /api/contacts/{id}", api.handleDeleteContact)
	mux.HandleFunc("GET /api/search", api.handleSearch)

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)

	return api
}

func (a *fakeAPI) baseURL() string { return a.server.URL }

// authedUser resolves the bearer token on a request to a user record.
func (a *fakeAPI) authedUser(r *http.Request) *fakeUser {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}

	token, _, err := jwt.NewParser().ParseUnverified(strings.TrimPrefix(header, "Bearer "), &jwt.RegisteredClaims{})
	if err != nil {
		return nil
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.users[claims.Subject]
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (a *fakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	a.mu.Lock()
	user := a.users[r.PostFormValue("username")]
	a.mu.Unlock()

	if user == nil || user.password != r.PostFormValue("password") {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	// The client only inspects claims, so the signing key is arbitrary.
	claims := jwt.RegisteredClaims{
		Subject:   user.email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("e2e-signing-key"))
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": signed,
		"token_type":   "bearer",
	})
}

func (a *fakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.users[body.Email]; exists {
		writeDetail(w, http.StatusUnprocessableEntity, "Email already registered")
		return
	}

	a.nextUser++
	a.users[body.Email] = &fakeUser{id: a.nextUser, email: body.Email, password: body.Password}
	writeJSON(w, http.StatusCreated, map[string]any{"id": a.nextUser, "email": body.Email})
}

func (a *fakeAPI) handleMe(w http.ResponseWriter, r *http.Request) {
	a.meCalls.Add(1)

	user := a.authedUser(r)
	if user == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":             user.id,
		"email":          user.email,
		"is_2fa_enabled": user.totpActive,
	})
}

func (a *fakeAPI) handleSetup2FA(w http.ResponseWriter, r *http.Request) {
	user := a.authedUser(r)
	if user == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "phonebook", AccountName: user.email})
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to generate secret")
		return
	}

	a.mu.Lock()
	user.totpSecret = key.Secret()
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"secret": key.Secret(), "uri": key.URL()})
}

func (a *fakeAPI) handleVerifySetup(w http.ResponseWriter, r *http.Request) {
	user := a.authedUser(r)
	if user == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if !a.validateCode(w, r, user) {
		return
	}

	a.mu.Lock()
	user.totpActive = true
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "2FA enabled"})
}

func (a *fakeAPI) handleVerifyLogin(w http.ResponseWriter, r *http.Request) {
	user := a.authedUser(r)
	if user == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if !user.totpActive {
		writeDetail(w, http.StatusBadRequest, "2FA is not enabled")
		return
	}

	if !a.validateCode(w, r, user) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "2FA verified"})
}

func (a *fakeAPI) validateCode(w http.ResponseWriter, r *http.Request, user *fakeUser) bool {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}

	a.mu.Lock()
	secret := user.totpSecret
	a.mu.Unlock()

	if secret == "" || !totp.Validate(body.Code, secret) {
		writeDetail(w, http.StatusUnauthorized, "Invalid 2FA code")
		return false
	}
	return true
}

func (a *fakeAPI) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	if a.authedUser(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var body contactRecord
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" || len(body.Phone) != 10 {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid contact")
		return
	}

	a.mu.Lock()
	a.nextID++
	body.ID = a.nextID
	a.contacts[body.ID] = body
	a.mu.Unlock()

	writeJSON(w, http.StatusCreated, body)
}

func (a *fakeAPI) handleListContacts(w http.ResponseWriter, r *http.Request) {
	if a.authedUser(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 100
	}

	all := a.sortedContacts()
	if skip > len(all) {
		skip = len(all)
	}
	all = all[skip:]
	if len(all) > limit {
		all = all[:limit]
	}
	writeJSON(w, http.StatusOK, all)
}

func (a *fakeAPI) handleGetContact(w http.ResponseWriter, r *http.Request) {
	if a.authedUser(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, _ := strconv.Atoi(r.PathValue("id"))
	a.mu.Lock()
	contact, ok := a.contacts[id]
	a.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Contact not found")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (a *fakeAPI) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	if a.authedUser(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, _ := strconv.Atoi(r.PathValue("id"))
	a.mu.Lock()
	contact, ok := a.contacts[id]
	a.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Contact not found")
		return
	}

	var patch struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if patch.Name != nil {
		contact.Name = *patch.Name
	}
	if patch.Phone != nil {
		contact.Phone = *patch.Phone
	}
	if patch.Email != nil {
		contact.Email = *patch.Email
	}
	if patch.Address != nil {
		contact.Address = *patch.Address
	}

	a.mu.Lock()
	a.contacts[id] = contact
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, contact)
}

func (a *fakeAPI) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if a.authedUser(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, _ := strconv.Atoi(r.PathValue("id"))
	a.mu.Lock()
	_, ok := a.contacts[id]
	delete(a.contacts, id)
	a.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Contact not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *fakeAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	if a.authedUser(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	q := strings.ToLower(r.URL.Query().Get("q"))
	var results []contactRecord
	for _, c := range a.sortedContacts() {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(c.Phone, q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			results = append(results, c)
		}
	}
	if results == nil {
		results = []contactRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"total": len(results), "results": results})
}

func (a *fakeAPI) sortedContacts() []contactRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	all := make([]contactRecord, 0, len(a.contacts))
	for _, c := range a.contacts {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// registerUser creates an account directly in the fake server, skipping
// the registration endpoint.
func (a *fakeAPI) registerUser(t *testing.T, email, password string) {
	t.Helper()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextUser++
	a.users[email] = &fakeUser{id: a.nextUser, email: email, password: password}
}

// newTestApp builds a fully wired application pointed at the fake
// server. Reusing dataDir across calls simulates an application restart
// with the same on-disk state.
func newTestApp(t *testing.T, baseURL, dataDir string) *app.App {
	t.Helper()

	application, err := app.New(app.Config{
		APIBaseURL: baseURL,
		DataDir:    dataDir,
		Env:        "test",
		LogLevel:   "error",
		LogFormat:  "text",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	return application
}

// currentCode computes the TOTP code for a secret right now.
func currentCode(t *testing.T, secret string) string {
	t.Helper()

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}
