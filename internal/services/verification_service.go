package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ecosayahat/backend/internal/config"
	"github.com/ecosayahat/backend/internal/models"
)

const classifierSystemPrompt = "You are an eco-task verification assistant. " +
	"Analyze the image and determine if it shows the user completing an eco-friendly task " +
	"like recycling, cleaning, or visiting nature. Respond with 'VERIFIED' if valid, or 'REJECTED' if not."

// Classifier is the opaque image-understanding service. It receives a text
// prompt, the evidence image and a session identifier, and returns free-form
// text. The only contract this system relies on is the approval marker token
// somewhere in the response.
type Classifier interface {
	Verify(ctx context.Context, sessionID, prompt, imageBase64 string) (string, error)
}

// OpenAIClassifier sends the task description and evidence image to a vision
// chat model.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClassifier) Verify(ctx context.Context, sessionID, prompt, imageBase64 string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: classifierSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    "data:image/jpeg;base64," + imageBase64,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		Temperature: 0.1,
		User:        sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("classifier call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("classifier returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// VerificationJob carries everything a worker needs so it never touches the
// original HTTP request.
type VerificationJob struct {
	SubmissionID string
	TaskID       string
	UserID       string
	ImageBase64  string
}

// VerificationService drains a bounded queue of submission jobs with a fixed
// worker pool, asks the classifier for a verdict and applies it. Approval
// commits the submission transition, the balance increment and the ledger
// append in a single SQL transaction. Verification never retries: a failed
// submission ends in the error state and the user resubmits.
type VerificationService struct {
	db         *sql.DB
	tasks      *TaskService
	ledger     *EcocoinLedgerService
	classifier Classifier
	config     *config.VerificationConfig
	jobs       chan VerificationJob
	wg         sync.WaitGroup
}

func NewVerificationService(db *sql.DB, tasks *TaskService, ledger *EcocoinLedgerService, classifier Classifier) *VerificationService {
	cfg := config.LoadVerificationConfig()
	return &VerificationService{
		db:         db,
		tasks:      tasks,
		ledger:     ledger,
		classifier: classifier,
		config:     cfg,
		jobs:       make(chan VerificationJob, cfg.QueueSize),
	}
}

// Start launches the worker pool. Workers exit when ctx is cancelled or the
// queue is closed.
func (s *VerificationService) Start(ctx context.Context) {
	for i := 0; i < s.config.Workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-s.jobs:
					if !ok {
						return
					}
					s.Process(ctx, job)
				}
			}
		}()
	}
	log.Printf("[VERIFY] Started %d verification workers (queue size %d)", s.config.Workers, s.config.QueueSize)
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (s *VerificationService) Stop() {
	close(s.jobs)
	s.wg.Wait()
}

// Enqueue hands a submission to the pool without blocking the request path.
// When the queue is full the submission is marked error immediately: bounded
// resources win over best-effort buffering, and the user can resubmit.
func (s *VerificationService) Enqueue(ctx context.Context, job VerificationJob) {
	select {
	case s.jobs <- job:
	default:
		log.Printf("[VERIFY] Queue full, failing submission %s", job.SubmissionID)
		s.markError(ctx, job.SubmissionID)
	}
}

// Process runs the verification flow for one submission.
func (s *VerificationService) Process(ctx context.Context, job VerificationJob) {
	task, err := s.tasks.GetTask(ctx, job.TaskID)
	if err == sql.ErrNoRows {
		// Unknown task: abort silently, the submission stays in verifying.
		log.Printf("[VERIFY] Task %s not found for submission %s, skipping", job.TaskID, job.SubmissionID)
		return
	}
	if err != nil {
		log.Printf("[VERIFY] Task lookup failed for submission %s: %v", job.SubmissionID, err)
		s.markError(ctx, job.SubmissionID)
		return
	}

	prompt := fmt.Sprintf("Task: %s. Description: %s. Does this image show completion of this task?",
		task.TitleEN, task.DescriptionEN)

	classifierCtx, cancel := context.WithTimeout(ctx, s.config.ClassifierTimeout)
	defer cancel()

	response, err := s.classifier.Verify(classifierCtx, "task_verify_"+job.SubmissionID, prompt, job.ImageBase64)
	if err != nil {
		log.Printf("[VERIFY] Classifier failed for submission %s: %v", job.SubmissionID, err)
		s.markError(ctx, job.SubmissionID)
		return
	}

	if isVerified(response) {
		if err := s.approve(ctx, job, task); err != nil {
			log.Printf("[VERIFY] Approval failed for submission %s: %v", job.SubmissionID, err)
			s.markError(ctx, job.SubmissionID)
			return
		}
		log.Printf("[VERIFY] Submission %s approved, %d coins credited to user %s",
			job.SubmissionID, task.RewardCoins, job.UserID)
		return
	}

	if err := s.tasks.MarkRejected(ctx, job.SubmissionID, time.Now()); err != nil {
		log.Printf("[VERIFY] Rejection update failed for submission %s: %v", job.SubmissionID, err)
		s.markError(ctx, job.SubmissionID)
		return
	}
	log.Printf("[VERIFY] Submission %s rejected", job.SubmissionID)
}

// isVerified implements the verdict contract: a case-insensitive "VERIFIED"
// marker anywhere in the classifier's free-text response means approval,
// anything else is a rejection. Kept in one place so a structured-output
// contract can replace it without touching the state machine.
func isVerified(response string) bool {
	return strings.Contains(strings.ToUpper(response), "VERIFIED")
}

// approve commits the terminal transition and the reward payout atomically.
func (s *VerificationService) approve(ctx context.Context, job VerificationJob, task models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.tasks.MarkApprovedTx(tx, job.SubmissionID, time.Now()); err != nil {
		return err
	}
	if err := s.ledger.CreditTx(tx, job.UserID, task.RewardCoins, "Task completed: "+task.TitleEN); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *VerificationService) markError(ctx context.Context, submissionID string) {
	if err := s.tasks.MarkError(ctx, submissionID); err != nil {
		log.Printf("[VERIFY] Failed to mark submission %s as error: %v", submissionID, err)
	}
}
