package models

import "time"

// File describes an uploaded blob. The bytes live in the blob store under
// BlobKey; FileURL is where they can be fetched from.
type File struct {
	ID              string    `json:"fileId" dynamodbav:"fileId"`
	OwnerEmail      string    `json:"email" dynamodbav:"email"`
	OwnerName       string    `json:"user" dynamodbav:"user"`
	BlobKey         string    `json:"blobKey" dynamodbav:"blobKey"`
	FileURL         string    `json:"fileUrl" dynamodbav:"fileUrl"`
	FileName        string    `json:"fileName" dynamodbav:"fileName"`
	FileDescription string    `json:"fileDesc" dynamodbav:"fileDesc"`
	ContentType     string    `json:"contentType" dynamodbav:"contentType"`
	SizeBytes       int64     `json:"sizeBytes" dynamodbav:"sizeBytes"`
	UploadedAt      time.Time `json:"uploadTime" dynamodbav:"uploadTime"`
	ModifiedAt      time.Time `json:"modifiedDate" dynamodbav:"modifiedDate"`
}
