package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/studycove/studytime-cron/models"
)

type R2DAO struct {
	s3             S3Uploader
	bucketName     string
	snapshotPrefix string
	metadataPrefix string
}

func NewR2DAO(bucketName, snapshotPrefix, metadataPrefix string) *R2DAO {
	return &R2DAO{
		s3:             initS3Client(),
		bucketName:     bucketName,
		snapshotPrefix: snapshotPrefix,
		metadataPrefix: metadataPrefix,
	}
}

func NewR2DAOWithClient(bucketName, snapshotPrefix, metadataPrefix string, s3Client S3Uploader) *R2DAO {
	return &R2DAO{
		s3:             s3Client,
		bucketName:     bucketName,
		snapshotPrefix: snapshotPrefix,
		metadataPrefix: metadataPrefix,
	}
}

func (u *R2DAO) GetCheckpoint() (models.Checkpoint, error) {
	key := path.Join(u.metadataPrefix, CHECKPOINT_FILE)
	resp, err := u.s3.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(u.bucketName),
		Key:    aws.String(key),
	})

	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			// First ever run, nothing recorded yet.
			return models.Checkpoint{}, nil
		}
		return models.Checkpoint{}, err
	}
	defer resp.Body.Close()

	var checkpoint models.Checkpoint
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&checkpoint); err != nil {
		return models.Checkpoint{}, err
	}

	return checkpoint, nil
}

func (u *R2DAO) SaveCheckpoint(checkpoint models.Checkpoint) error {
	key := path.Join(u.metadataPrefix, CHECKPOINT_FILE)
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	_, err = u.s3.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(u.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}

func (u *R2DAO) SaveSnapshots(rows []models.SnapshotRow) error {
	rowsByCategory := groupByCategory(rows)

	var err error
	for category, categoryRows := range rowsByCategory {
		key := path.Join(u.snapshotPrefix, fmt.Sprintf(SNAPSHOT_FILENAME_FORMAT, category))
		logrus.Infof("Saving %d snapshot rows for category %s to bucket: %s with key: %s",
			len(categoryRows), category, u.bucketName, key)
		err = multierr.Append(err, writeCSVToR2(u.s3, u.bucketName, key, categoryRows, true))
	}
	return err
}

func initS3Client() *s3.Client {
	// Load .env only for local dev
	_ = godotenv.Load()

	endpoint := os.Getenv("R2_ENDPOINT")
	accessKeyId := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_SECRET_ACCESS_KEY")

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyId, accessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal(err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
}

func writeCSVToR2[T any](
	client S3Uploader,
	bucket, key string,
	records []T,
	appendMode bool,
) error {
	// Marshal all records to CSV bytes (includes header)
	csvBytes, err := gocsv.MarshalBytes(records)
	if err != nil {
		return fmt.Errorf("failed to marshal csv: %w", err)
	}

	var fullData []byte

	if appendMode {
		// Check if object exists by trying to get it
		resp, err := client.GetObject(context.TODO(), &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		})

		if err != nil {
			var nsk *types.NoSuchKey
			if errors.As(err, &nsk) {
				// File doesn't exist → write full CSV (header + data)
				fullData = csvBytes
			} else {
				return fmt.Errorf("failed to get object: %w", err)
			}
		} else {
			defer resp.Body.Close()
			existingData, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read existing object: %w", err)
			}

			// Remove header line from new CSV before appending
			csvStr := string(csvBytes)
			idx := strings.Index(csvStr, "\n")
			if idx == -1 {
				return fmt.Errorf("csv data malformed, no newline found")
			}
			dataWithoutHeader := csvBytes[idx+1:]

			// Append new CSV data (no header) to existing content
			fullData = append(existingData, dataWithoutHeader...)
		}
	} else {
		// Overwrite mode → write entire CSV including header
		fullData = csvBytes
	}

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(fullData),
	})
	return err
}
