package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"alcyxob/trainerpro/internal/storage"
)

var ErrVideoStorageDisabled = errors.New("video storage is not configured")

// VideoUpload is handed to the console so it can PUT the file directly.
type VideoUpload struct {
	UploadURL   string    `json:"uploadUrl"`
	VideoURL    string    `json:"videoUrl"`
	ObjectKey   string    `json:"objectKey"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type VideoService interface {
	// RequestUpload presigns an upload and points the exercise at the new object.
	// A previous video stored in the same bucket is removed.
	RequestUpload(ctx context.Context, studentID, exerciseID, contentType string) (*VideoUpload, error)
	// ViewURL returns a short-lived GET link for a stored video.
	ViewURL(ctx context.Context, studentID, exerciseID string) (string, error)
}

type videoService struct {
	students StudentService
	files    storage.FileStorage // nil when S3 is not configured
	expiry   time.Duration
	now      Clock
	logger   *slog.Logger
}

func NewVideoService(students StudentService, files storage.FileStorage, expiry time.Duration, now Clock, logger *slog.Logger) VideoService {
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	return &videoService{students: students, files: files, expiry: expiry, now: now, logger: logger}
}

func (s *videoService) RequestUpload(ctx context.Context, studentID, exerciseID, contentType string) (*VideoUpload, error) {
	if s.files == nil {
		return nil, ErrVideoStorageDisabled
	}
	key, err := storage.ExerciseVideoKey(exerciseID, contentType)
	if err != nil {
		return nil, err
	}
	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, err
	}

	videoURL := s.files.PublicURL(key)
	_, previous, err := s.students.SetExerciseVideo(ctx, studentID, exerciseID, videoURL)
	if err != nil {
		return nil, err
	}
	if oldKey, ok := s.files.ObjectKey(previous); ok {
		if err := s.files.DeleteObject(ctx, oldKey); err != nil {
			s.logger.Warn("previous exercise video not removed", "key", oldKey, "error", err)
		}
	}

	return &VideoUpload{
		UploadURL:   uploadURL,
		VideoURL:    videoURL,
		ObjectKey:   key,
		ContentType: contentType,
		ExpiresAt:   s.now().Add(s.expiry),
	}, nil
}

func (s *videoService) ViewURL(ctx context.Context, studentID, exerciseID string) (string, error) {
	if s.files == nil {
		return "", ErrVideoStorageDisabled
	}
	student, err := s.students.GetStudent(ctx, studentID)
	if err != nil {
		return "", err
	}
	for _, session := range student.WeeklyPlan {
		for _, ex := range session.Exercises {
			if ex.ID != exerciseID {
				continue
			}
			key, ok := s.files.ObjectKey(ex.VideoURL)
			if !ok {
				// external links and the placeholder are returned as stored
				return ex.VideoURL, nil
			}
			return s.files.GeneratePresignedDownloadURL(ctx, key, s.expiry)
		}
	}
	return "", ErrExerciseNotFound
}
