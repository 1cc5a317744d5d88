// Package backup uploads SQLite database files to S3 on a schedule.
package backup

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/config"
	"github.com/dhasakgbb/physioSim-sub001/internal/database"
)

const uploadTimeout = 5 * time.Minute

// Uploader is the S3 upload surface the service needs; satisfied by
// manager.Uploader and mockable in tests.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Service backs up database files to an S3 bucket.
type Service struct {
	cfg       config.BackupConfig
	databases map[string]*database.DB
	uploader  Uploader
	log       zerolog.Logger
}

// NewService creates a backup service with an explicit uploader.
func NewService(cfg config.BackupConfig, databases map[string]*database.DB, uploader Uploader, log zerolog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		databases: databases,
		uploader:  uploader,
		log:       log.With().Str("service", "backup").Logger(),
	}
}

// NewServiceFromConfig creates a backup service with a real S3 client
// from the default AWS credential chain.
func NewServiceFromConfig(ctx context.Context, cfg config.BackupConfig, databases map[string]*database.DB, log zerolog.Logger) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	uploader := manager.NewUploader(s3.NewFromConfig(awsCfg))
	return NewService(cfg, databases, uploader, log), nil
}

// Name returns the job name
func (s *Service) Name() string {
	return "s3_backup"
}

// Run checkpoints and uploads every database file. One failed upload
// does not stop the rest; the first error is reported after all
// databases were attempted.
func (s *Service) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	var firstErr error
	for name, db := range s.databases {
		if db == nil {
			continue
		}
		if err := s.backupOne(ctx, name, db, stamp); err != nil {
			s.log.Error().Err(err).Str("database", name).Msg("Backup failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *Service) backupOne(ctx context.Context, name string, db *database.DB, stamp string) error {
	// Fold the WAL into the main file so the copy is self-contained.
	if err := db.WALCheckpoint("TRUNCATE"); err != nil {
		return fmt.Errorf("checkpoint before backup: %w", err)
	}

	f, err := os.Open(db.Path())
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer f.Close()

	key := path.Join(s.cfg.Prefix, stamp, name+".db")
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	s.log.Info().Str("database", name).Str("key", key).Msg("Database backed up")
	return nil
}
