package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatorValidate(t *testing.T) {
	tempDir := t.TempDir()

	emptyPDF := filepath.Join(tempDir, "empty.pdf")
	if err := os.WriteFile(emptyPDF, nil, 0o644); err != nil {
		t.Fatalf("failed to create empty file: %v", err)
	}

	notPDF := filepath.Join(tempDir, "report.txt")
	if err := os.WriteFile(notPDF, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to create text file: %v", err)
	}

	bogusPDF := filepath.Join(tempDir, "bogus.pdf")
	if err := os.WriteFile(bogusPDF, []byte("this is not a pdf at all"), 0o644); err != nil {
		t.Fatalf("failed to create bogus file: %v", err)
	}

	largePDF := filepath.Join(tempDir, "large.pdf")
	if err := os.WriteFile(largePDF, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("failed to create large file: %v", err)
	}

	tests := []struct {
		name        string
		maxFileSize int64
		path        string
		wantErr     string
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: "path cannot be empty",
		},
		{
			name:    "missing file",
			path:    filepath.Join(tempDir, "missing.pdf"),
			wantErr: "does not exist",
		},
		{
			name:    "directory",
			path:    tempDir,
			wantErr: "directory",
		},
		{
			name:    "wrong extension",
			path:    notPDF,
			wantErr: "not a PDF",
		},
		{
			name:    "empty file",
			path:    emptyPDF,
			wantErr: "empty",
		},
		{
			name:        "over size limit",
			maxFileSize: 1024,
			path:        largePDF,
			wantErr:     "too large",
		},
		{
			name:    "corrupt content",
			path:    bogusPDF,
			wantErr: "invalid PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maxSize := tt.maxFileSize
			if maxSize == 0 {
				maxSize = 100 * 1024 * 1024
			}
			v := NewValidator(maxSize)

			err := v.Validate(tt.path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
