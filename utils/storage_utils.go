package utils

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// S3-compatible object storage settings, loaded from the environment.
var (
	s3Once   sync.Once
	s3Client *s3.S3
	s3Bucket string
	s3Public string
)

func getS3Client() *s3.S3 {
	s3Once.Do(func() {
		s3Bucket = os.Getenv("S3_BUCKET")
		s3Public = os.Getenv("S3_PUBLIC_URL")
		region := os.Getenv("S3_REGION")
		if region == "" {
			region = "us-east-1"
		}
		sess := session.Must(session.NewSession(&aws.Config{
			Region:   aws.String(region),
			Endpoint: aws.String(os.Getenv("S3_ENDPOINT")),
			Credentials: credentials.NewStaticCredentials(
				os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), "",
			),
		}))
		s3Client = s3.New(sess)
	})
	return s3Client
}

// ObjectName builds a collision-free object key component from a client
// filename, keeping only its base name and extension.
func ObjectName(fileName string) string {
	return uuid.New().String() + "_" + filepath.Base(fileName)
}

// UploadFileToS3 stores the file under folder/<uuid>_fileName with
// public-read ACL and returns the public URL. The uuid prefix keeps uploads
// sharing a client filename from overwriting each other, and the content type
// is sniffed from the bytes rather than trusted from the client.
func UploadFileToS3(file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, ObjectName(fileName))
	client := getS3Client()

	if sniffed := http.DetectContentType(file); sniffed != "application/octet-stream" {
		contentType = sniffed
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s3Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s", s3Public, filePath), nil
}
