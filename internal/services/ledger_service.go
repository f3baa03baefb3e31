package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/ecosayahat/backend/internal/config"
	"github.com/ecosayahat/backend/internal/models"
)

// EcocoinLedgerService is the only writer of users.ecocoin_balance. Every
// balance change is paired with an append-only ecocoin_transactions row in
// the same SQL transaction, so the balance column always equals the
// transaction sum.
type EcocoinLedgerService struct {
	db     *sql.DB
	redis  *redis.Client
	config *config.EcocoinConfig
}

func NewEcocoinLedgerService(db *sql.DB, redisClient *redis.Client) *EcocoinLedgerService {
	return &EcocoinLedgerService{
		db:     db,
		redis:  redisClient,
		config: config.LoadEcocoinConfig(),
	}
}

// Credit adds amount coins to the user and appends an earned transaction.
func (s *EcocoinLedgerService) Credit(ctx context.Context, userID string, amount int64, description string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.CreditTx(tx, userID, amount, description); err != nil {
		return err
	}

	return tx.Commit()
}

// CreditTx applies a credit inside a caller-owned transaction. The
// verification dispatcher uses it to commit the submission update, the
// balance increment and the ledger append atomically.
func (s *EcocoinLedgerService) CreditTx(tx *sql.Tx, userID string, amount int64, description string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	result, err := tx.Exec(`
		UPDATE users SET ecocoin_balance = ecocoin_balance + $1 WHERE id = $2`,
		amount, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("user %s not found", userID)
	}

	_, err = tx.Exec(`
		INSERT INTO ecocoin_transactions (id, user_id, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), userID, amount, models.TransactionEarned, description, time.Now())
	return err
}

// Debit removes up to amount coins. The actual debit is clamped to the
// available balance and the ledger records the applied amount, negative,
// as a spent transaction. A zero clamp writes nothing. Returns the amount
// actually debited.
func (s *EcocoinLedgerService) Debit(ctx context.Context, userID string, amount int64, description string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRow(`SELECT ecocoin_balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		return 0, err
	}

	debited := amount
	if balance < debited {
		debited = balance
	}
	if debited == 0 {
		return 0, tx.Commit()
	}

	if _, err := tx.Exec(`
		UPDATE users SET ecocoin_balance = ecocoin_balance - $1 WHERE id = $2`,
		debited, userID); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`
		INSERT INTO ecocoin_transactions (id, user_id, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), userID, -debited, models.TransactionSpent, description, time.Now()); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	log.Printf("[LEDGER] Debited %d of requested %d coins from user %s", debited, amount, userID)
	return debited, nil
}

func (s *EcocoinLedgerService) GetBalanceValue(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx, `SELECT ecocoin_balance FROM users WHERE id = $1`, userID).Scan(&balance)
	return balance, err
}

func (s *EcocoinLedgerService) listTransactions(ctx context.Context, userID string) ([]models.EcocoinTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount, type, description, created_at
		FROM ecocoin_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 100`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.EcocoinTransaction{}
	for rows.Next() {
		var t models.EcocoinTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *EcocoinLedgerService) leaderboard(ctx context.Context, role string, limit int) ([]models.LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:%s:%d", role, limit)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []models.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, ecocoin_balance FROM users
		WHERE role = $1
		ORDER BY ecocoin_balance DESC
		LIMIT $2`, role, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.EcocoinBalance); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(entries); err == nil {
			if err := s.redis.Set(ctx, cacheKey, encoded, s.config.LeaderboardCacheTTL).Err(); err != nil {
				log.Printf("[LEDGER] Failed to cache leaderboard: %v", err)
			}
		}
	}
	return entries, nil
}

// GetBalance returns the caller's eco-coin balance
// @Summary Get eco-coin balance
// @Tags ecocoins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 401 {object} ErrorResponse
// @Router /ecocoins/balance [get]
func (s *EcocoinLedgerService) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	balance, err := s.GetBalanceValue(r.Context(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[LEDGER] Balance query failed for user %s: %v", userID, err)
		SendErrorResponse(w, "Failed to fetch balance", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"balance": balance})
}

// GetTransactions returns the caller's transaction history, newest first
// @Summary List eco-coin transactions
// @Tags ecocoins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EcocoinTransaction
// @Failure 401 {object} ErrorResponse
// @Router /ecocoins/transactions [get]
func (s *EcocoinLedgerService) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	transactions, err := s.listTransactions(r.Context(), userID)
	if err != nil {
		log.Printf("[LEDGER] Transaction query failed for user %s: %v", userID, err)
		SendErrorResponse(w, "Failed to fetch transactions", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

// GetLeaderboard returns the top tourists by balance
// @Summary Eco-coin leaderboard
// @Tags ecocoins
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Router /ecocoins/leaderboard [get]
func (s *EcocoinLedgerService) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.leaderboard(r.Context(), models.RoleTourist, s.config.LeaderboardLimit)
	if err != nil {
		log.Printf("[LEDGER] Leaderboard query failed: %v", err)
		SendErrorResponse(w, "Failed to fetch leaderboard", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
