package auth

import "testing"

func TestCredentialsFromEnviron(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		want    Credentials
		wantErr bool
	}{
		{
			name: "complete environment",
			environ: []string{
				"TARGET_API_CLIENT_ID=abc",
				"TARGET_API_CLIENT_SECRET=xyz",
				"HOME=/home/user",
			},
			want: Credentials{ClientID: "abc", ClientSecret: "xyz"},
		},
		{
			name: "missing secret",
			environ: []string{
				"TARGET_API_CLIENT_ID=abc",
			},
			wantErr: true,
		},
		{
			name:    "empty environment",
			environ: []string{},
			wantErr: true,
		},
		{
			name: "unrelated variables ignored",
			environ: []string{
				"TARGET_API_CLIENT_ID=abc",
				"TARGET_API_CLIENT_SECRET=xyz",
				"TARGET_API_SOMETHING_ELSE=ignored",
			},
			want: Credentials{ClientID: "abc", ClientSecret: "xyz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := credentialsFromEnviron(func() []string { return tt.environ })
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if creds != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, creds)
			}
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	valid := Credentials{ClientID: "abc", ClientSecret: "xyz"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	invalid := Credentials{ClientID: "abc"}
	if err := invalid.Validate(); err == nil {
		t.Error("expected error for missing secret, got nil")
	}
}
