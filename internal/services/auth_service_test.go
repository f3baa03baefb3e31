package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/ecosayahat/backend/internal/models"
)

func setupAuthViper() {
	viper.Set("argon2.salt_length", 16)
	viper.Set("argon2.time", 1)
	viper.Set("argon2.memory", 64*1024)
	viper.Set("argon2.threads", 4)
	viper.Set("argon2.key_length", 32)
	viper.Set("jwt.secret_key", "test-secret")
	viper.Set("jwt.expiry_hours", 24)
}

func TestAuthService_Register(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	setupAuthViper()

	ledger := NewEcocoinLedgerService(db, nil)
	service := NewAuthService(db, nil, ledger)

	t.Run("successful registration pays welcome bonus", func(t *testing.T) {
		req := RegisterRequest{
			Email:    "aida@example.com",
			Password: "password123",
			Name:     "Aida",
			Role:     models.RoleTourist,
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), req.Email, req.Name, req.Role, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET ecocoin_balance = ecocoin_balance \\+ \\$1 WHERE id = \\$2").
			WithArgs(int64(100), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO ecocoin_transactions").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(100), models.TransactionEarned, "Welcome bonus", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		body, _ := json.Marshal(req)
		r := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var response AuthResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, req.Email, response.User.Email)
		assert.Equal(t, int64(100), response.User.EcocoinBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid request body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer([]byte("invalid")))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		body, _ := json.Marshal(RegisterRequest{
			Email:    "aida@example.com",
			Password: "password123",
			Name:     "Aida",
			Role:     "superuser",
		})
		r := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		req := RegisterRequest{
			Email:    "taken@example.com",
			Password: "password123",
			Name:     "Aida",
			Role:     models.RoleTourist,
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), req.Email, req.Name, req.Role, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errors.New("pq: duplicate key value violates unique constraint"))
		mock.ExpectRollback()

		body, _ := json.Marshal(req)
		r := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuthService_Login(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	setupAuthViper()

	ledger := NewEcocoinLedgerService(db, nil)
	service := NewAuthService(db, nil, ledger)

	t.Run("successful login", func(t *testing.T) {
		hashedPassword, _ := hashPassword("password123")

		mock.ExpectQuery("SELECT id, email, name, role, password_hash, ecocoin_balance, created_at FROM users").
			WithArgs("aida@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "password_hash", "ecocoin_balance", "created_at"}).
				AddRow("user1", "aida@example.com", "Aida", models.RoleTourist, hashedPassword, int64(130), time.Now()))

		body, _ := json.Marshal(LoginRequest{Email: "aida@example.com", Password: "password123"})
		r := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var response AuthResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, int64(130), response.User.EcocoinBalance)
	})

	t.Run("wrong password", func(t *testing.T) {
		hashedPassword, _ := hashPassword("password123")

		mock.ExpectQuery("SELECT id, email, name, role, password_hash, ecocoin_balance, created_at FROM users").
			WithArgs("aida@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "password_hash", "ecocoin_balance", "created_at"}).
				AddRow("user1", "aida@example.com", "Aida", models.RoleTourist, hashedPassword, int64(130), time.Now()))

		body, _ := json.Marshal(LoginRequest{Email: "aida@example.com", Password: "hunter2hunter2"})
		r := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("user not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name, role, password_hash, ecocoin_balance, created_at FROM users").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		body, _ := json.Marshal(LoginRequest{Email: "nobody@example.com", Password: "password123"})
		r := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthService_Me(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ledger := NewEcocoinLedgerService(db, nil)
	service := NewAuthService(db, nil, ledger)

	t.Run("returns profile", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name, role, ecocoin_balance, created_at FROM users").
			WithArgs("user1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "ecocoin_balance", "created_at"}).
				AddRow("user1", "aida@example.com", "Aida", models.RoleTourist, int64(130), time.Now()))

		r := httptest.NewRequest("GET", "/auth/me", nil)
		r = r.WithContext(context.WithValue(r.Context(), "userID", "user1"))
		w := httptest.NewRecorder()

		service.Me(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var user models.User
		json.Unmarshal(w.Body.Bytes(), &user)
		assert.Equal(t, "Aida", user.Name)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/auth/me", nil)
		w := httptest.NewRecorder()

		service.Me(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	setupAuthViper()

	redisClient, redisMock := redismock.NewClientMock()
	ledger := NewEcocoinLedgerService(db, nil)
	service := NewAuthService(db, redisClient, ledger)

	t.Run("blacklists the presented token", func(t *testing.T) {
		redisMock.ExpectSet("blacklist:sometoken", "1", 24*time.Hour).SetVal("OK")

		r := httptest.NewRequest("POST", "/auth/logout", nil)
		r.Header.Set("Authorization", "Bearer sometoken")
		w := httptest.NewRecorder()

		service.Logout(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("no token is still a successful logout", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/auth/logout", nil)
		w := httptest.NewRecorder()

		service.Logout(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPasswordHashing(t *testing.T) {
	setupAuthViper()

	hashed, err := hashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)

	assert.True(t, verifyPassword("correct horse battery staple", hashed))
	assert.False(t, verifyPassword("wrong password", hashed))
	assert.False(t, verifyPassword("correct horse battery staple", "not$even$a$hash"))
}

// bindArgon2Env mirrors the bootstrap in cmd/server/main.go so the hashing
// path is tested against the same env wiring a deployment uses.
func bindArgon2Env() {
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")
}

func TestPasswordHashingEnvConfig(t *testing.T) {
	t.Run("env-bound parameters are honored", func(t *testing.T) {
		viper.Reset()
		t.Setenv("ARGON2_TIME", "2")
		t.Setenv("ARGON2_MEMORY", "32768")
		t.Setenv("ARGON2_THREADS", "2")
		t.Setenv("ARGON2_KEY_LENGTH", "32")
		t.Setenv("ARGON2_SALT_LENGTH", "16")
		bindArgon2Env()

		assert.Equal(t, 2, viper.GetInt("argon2.time"))

		hashed, err := hashPassword("password123")
		assert.NoError(t, err)
		assert.True(t, verifyPassword("password123", hashed))
	})

	t.Run("unset config falls back to safe defaults", func(t *testing.T) {
		viper.Reset()

		hashed, err := hashPassword("password123")
		assert.NoError(t, err)
		assert.True(t, verifyPassword("password123", hashed))
		assert.False(t, verifyPassword("wrong", hashed))
	})
}

func TestGenerateJWT(t *testing.T) {
	setupAuthViper()

	tokenString, err := generateJWT("user1", "aida@example.com", models.RoleTourist)
	assert.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user1", claims["user_id"])
	assert.Equal(t, "aida@example.com", claims["email"])
	assert.Equal(t, models.RoleTourist, claims["role"])
}
