package s3io

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ContentTypePDF is the only receipt document type accepted.
const ContentTypePDF = "application/pdf"

// BuildReceiptKey constructs the S3 key for a donation's delivery receipt.
func BuildReceiptKey(campID, donationID string) string {
	return fmt.Sprintf("receipts/%s/%s.pdf", campID, donationID)
}

// ParseReceiptKey extracts the camp and donation ids from a receipt key.
func ParseReceiptKey(key string) (campID, donationID string, ok bool) {
	if strings.ToLower(filepath.Ext(key)) != ".pdf" {
		return "", "", false
	}
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] != "receipts" {
		return "", "", false
	}
	return parts[1], strings.TrimSuffix(parts[2], ".pdf"), true
}

// UploadHeaders builds the headers the client must send on the receipt PUT.
func UploadHeaders(donationID, uploaderID, contentType string) map[string]string {
	if contentType == "" {
		contentType = ContentTypePDF
	}
	return map[string]string{
		"Content-Type":                 contentType,
		"x-amz-server-side-encryption": "aws:kms",
		"x-amz-meta-donation_id":       donationID,
		"x-amz-meta-uploaded_by":       uploaderID,
	}
}
