package feed

import (
	"context"
	"encoding/json"
	"fmt"

	platformredis "careerhub/internal/platform/redis"
	"careerhub/internal/recruiting/models"
	id "careerhub/pkg/domain"
)

// Redis keeps each student's feed in a hash keyed by job ID, so fanning the
// same job out twice overwrites rather than duplicates.
type Redis struct {
	client *platformredis.Client
}

func NewRedis(client *platformredis.Client) *Redis {
	return &Redis{client: client}
}

func feedKey(studentID id.StudentID) string {
	return "jobfeed:" + studentID.String()
}

func (s *Redis) Push(ctx context.Context, studentID id.StudentID, job *models.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode feed entry: %w", err)
	}
	if err := s.client.HSet(ctx, feedKey(studentID), job.ID.String(), payload).Err(); err != nil {
		return fmt.Errorf("push feed entry: %w", err)
	}
	return nil
}

func (s *Redis) List(ctx context.Context, studentID id.StudentID) ([]*models.Job, error) {
	entries, err := s.client.HGetAll(ctx, feedKey(studentID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var out []*models.Job
	for _, raw := range entries {
		var job models.Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			return nil, fmt.Errorf("decode feed entry: %w", err)
		}
		out = append(out, &job)
	}
	return out, nil
}
