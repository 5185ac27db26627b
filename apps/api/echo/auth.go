package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/user"
)

const (
	contextTokenKey   = "userToken"
	contextUserKey    = "user"
	contextSessionKey = "session"

	sessionKeyPrefix = "session:"
	jwtAudience      = "Students"
)

// Claims represents the authorization claims transmitted via a JWT.
// StandardClaims.Id is the session the token belongs to.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	RegNo        string `json:"reg_no,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
}

// authenticator issues tokens and maps each token to a user.Session in the key-value store.
type authenticator struct {
	conf      *core.Config
	store     core.KVStore
	provider  user.Provider
	validate  *validator.Validate
	jwtConfig middleware.JWTConfig
}

func newAuthenticator(conf *core.Config, store core.KVStore, provider user.Provider, validate *validator.Validate) *authenticator {
	return &authenticator{
		conf:     conf,
		store:    store,
		provider: provider,
		validate: validate,
		jwtConfig: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

// SessionKey is where the session `id` keeps its user.
func SessionKey(id string) string { return sessionKeyPrefix + id }

func (a *authenticator) session(id string) *user.Session {
	return user.NewSession(a.store, a.provider, a.validate, SessionKey(id))
}

// GetUserClaims builds the claims of a token for usr in session `sessionID`.
func GetUserClaims(conf *core.Config, usr user.User, sessionID string, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        sessionID,
			Issuer:    conf.AppName,
			Subject:   usr.ID,
			Audience:  jwtAudience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		RegNo:        usr.RegNo,
		Name:         usr.Name,
		Email:        usr.Email,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// login opens a new session for creds and returns its token.
func (a *authenticator) login(ctx echo.Context, creds user.Credentials) (string, user.User, error) {
	sessionID := uuid.New().String()
	usr, err := a.session(sessionID).Login(ctx.Request().Context(), creds)
	if err != nil {
		return "", user.User{}, err
	}
	token, err := GenerateToken(a.conf, GetUserClaims(a.conf, usr, sessionID))
	if err != nil {
		return "", user.User{}, errors.Wrap(err, "generating token")
	}
	return token, usr, nil
}

func (a *authenticator) refresh(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}
	usr, err := getContextUser(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context user")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(a.conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	token, err := GenerateToken(a.conf, GetUserClaims(a.conf, usr, claims.Id, claims.OrigIssuedAt))
	return token, errors.Wrap(err, "generating token")
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}
	return user.User{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (*user.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(*user.Session); ok {
		return sess, nil
	}
	return nil, errUnauthorized
}
