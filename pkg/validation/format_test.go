package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Valid json format",
			format:    "json",
			expectErr: false,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
		{
			name:      "XML format not supported",
			format:    "xml",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("Expected error for format '%s', but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error for format '%s', but got: %v", tt.format, err)
			}
		})
	}
}

func TestValidateExportPath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		extensions []string
		expectErr  bool
	}{
		{"Not requested", "", []string{".pdf"}, false},
		{"Matching extension", "out/report.pdf", []string{".pdf"}, false},
		{"Uppercase extension", "REPORT.PDF", []string{".pdf"}, false},
		{"One of several", "table.csv", []string{".xlsx", ".csv"}, false},
		{"Wrong extension", "report.docx", []string{".pdf"}, true},
		{"No extension", "report", []string{".pdf"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExportPath("test", tt.path, tt.extensions...)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateExportPath(%q) error = %v, expectErr %v", tt.path, err, tt.expectErr)
			}
		})
	}
}
