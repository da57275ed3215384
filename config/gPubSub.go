package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// ApprovalEvent is published whenever an application reaches a decision
// (advanced to the next approver, approved, or rejected). Downstream
// consumers (mail notifier, audit sink) subscribe to the topic.
type ApprovalEvent struct {
	ApplicationId   string    `json:"application_id"`
	ApplicantId     string    `json:"applicant_id"`
	ApproverId      string    `json:"approver_id"`
	ActorName       string    `json:"actor_name,omitempty"`
	NextApproverId  string    `json:"next_approver_id"`
	Status          string    `json:"status"`
	CurrentLevel    int       `json:"current_level"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	DecidedAt       time.Time `json:"decided_at"`
	CorrelationId   string    `json:"correlation_id"`
}

var (
	pubsubClient   *pubsub.Client
	pubsubClientMu sync.Mutex
)

func init() {
	// Load env from .env
	godotenv.Load()
}

func getPubSubProjectID() string {
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		return v
	}
	// Cloud Run/Cloud Functions often set this.
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		return v
	}
	if v := os.Getenv("GCP_PROJECT"); v != "" {
		return v
	}
	return ""
}

func getPubSubClient(ctx context.Context) (*pubsub.Client, error) {
	pubsubClientMu.Lock()
	defer pubsubClientMu.Unlock()
	if pubsubClient != nil {
		return pubsubClient, nil
	}

	projectID := getPubSubProjectID()
	if projectID == "" {
		return nil, errors.New("PUBSUB_PROJECT_ID/GOOGLE_CLOUD_PROJECT not set")
	}

	var (
		c   *pubsub.Client
		err error
	)
	if credJSON := os.Getenv("PUBSUB_CREDENTIALS_JSON"); credJSON != "" {
		c, err = pubsub.NewClient(ctx, projectID, option.WithCredentialsJSON([]byte(credJSON)))
	} else {
		// Uses Application Default Credentials (Cloud Run service account or GOOGLE_APPLICATION_CREDENTIALS).
		c, err = pubsub.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, err
	}
	pubsubClient = c
	return pubsubClient, nil
}

// PublishApprovalEvent publishes a decision event to the approval topic.
// Publishing is best-effort: when the topic or project is not configured the
// event is dropped with a nil error so approval flows keep working locally.
func PublishApprovalEvent(ctx context.Context, event ApprovalEvent) error {
	topicID := os.Getenv("PUBSUB_APPROVAL_TOPIC")
	if topicID == "" {
		return nil
	}

	client, err := getPubSubClient(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	result := client.Topic(topicID).Publish(ctx, &pubsub.Message{Data: data})
	_, err = result.Get(ctx)
	return err
}
