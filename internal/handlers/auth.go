package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/libshelf/apiserver/internal/services"
	"github.com/libshelf/apiserver/types"
	"github.com/rs/zerolog"
)

const defaultTokenTTL = time.Hour

// AuthHandler provides the login endpoint.
type AuthHandler struct {
	adminService *services.AdminService
	secret       []byte
	tokenTTL     time.Duration
	log          zerolog.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(adminService *services.AdminService, jwtSecret string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		secret:       []byte(jwtSecret),
		tokenTTL:     defaultTokenTTL,
		log:          log,
	}
}

// AuthRouter registers the unauthenticated routes: login and the bootstrap
// admin-creation endpoint left open for initial setup.
func AuthRouter(r chi.Router, auth *AuthHandler, admins *AdminHandler) {
	r.Post("/login", auth.Login)
	r.Post("/add-admin-user", admins.CreateAdmin)
}

// RequireAuth constructs the bearer-token gate run on every protected route.
// Decoded claims are discarded after verification; nothing downstream
// consumes them.
func RequireAuth(jwtSecret string, log zerolog.Logger) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgTokenNotProvided))
				return
			}

			// Header format is "<scheme> <token>"; the scheme itself is not
			// checked.
			var tokenString string
			if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
				tokenString = strings.TrimSpace(parts[1])
			}

			valid, err := verifyToken(tokenString, secret)
			switch {
			case err != nil && isTokenError(err):
				writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgInvalidToken))
			case err != nil:
				log.Error().Err(err).Msg("token verification fault")
				writeEnvelope(w, errorEnvelope(http.StatusInternalServerError, msgInternalServerError))
			case !valid:
				writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgAuthenticationFailed))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// Login verifies admin credentials and returns a signed access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgInvalidCredentials))
		return
	}

	// Checked before any lookup.
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" || len(req.Password) < services.MinPasswordLength {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgInvalidCredentials))
		return
	}

	admin, err := h.adminService.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrIncorrectCredentials) {
			writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgIncorrectCredentials))
			return
		}
		h.log.Error().Err(err).Str("userName", req.UserName).Msg("login fault")
		writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, err.Error()))
		return
	}

	token, err := h.issueToken(admin)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to sign token")
		writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		StatusCode: http.StatusOK,
		Status:     types.StatusSuccess,
		Data: adminPublic{
			UserName:  admin.UserName,
			Name:      admin.Name,
			ContactNo: admin.ContactNo,
			EmailId:   admin.EmailId,
		},
		AccessToken: token,
	})
}

type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated admin's public fields and the
// signed access token.
type LoginResponse struct {
	StatusCode  int         `json:"statusCode"`
	Status      string      `json:"status"`
	Message     string      `json:"message,omitempty"`
	Data        adminPublic `json:"data"`
	AccessToken string      `json:"accessToken"`
}

// adminPublic is the subset of admin fields exposed at login and embedded in
// the token claims.
type adminPublic struct {
	UserName  string `json:"userName"`
	Name      string `json:"name"`
	ContactNo string `json:"contactNo"`
	EmailId   string `json:"emailId"`
}

// adminClaims are the token claims issued at login.
type adminClaims struct {
	UserName  string `json:"userName"`
	Name      string `json:"name"`
	ContactNo string `json:"contactNo"`
	EmailId   string `json:"emailId"`
	jwt.RegisteredClaims
}

func (h *AuthHandler) issueToken(admin types.Admin) (string, error) {
	now := time.Now()
	claims := adminClaims{
		UserName:  admin.UserName,
		Name:      admin.Name,
		ContactNo: admin.ContactNo,
		EmailId:   admin.EmailId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

func verifyToken(tokenString string, secret []byte) (bool, error) {
	claims := adminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return false, err
	}
	return token.Valid, nil
}

// isTokenError reports whether a verification failure is attributable to the
// presented token rather than to the verifier itself.
func isTokenError(err error) bool {
	return errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenNotValidYet)
}
