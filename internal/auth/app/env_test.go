package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	out *secretsmanager.GetSecretValueOutput
	err error
	in  *secretsmanager.GetSecretValueInput
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.in = in
	return f.out, f.err
}

func TestApplySecret(t *testing.T) {
	t.Setenv("TEST_SECRET_KEPT", "local")
	t.Setenv("TEST_SECRET_NEW", "")

	fake := &fakeSecrets{out: &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"TEST_SECRET_KEPT":"remote","TEST_SECRET_NEW":"fresh","TEST_SECRET_PORT":8081}`),
	}}

	applied, err := applySecret(context.Background(), fake, "badgr/auth", false)
	require.NoError(t, err)
	require.Equal(t, 2, applied)
	require.Equal(t, "badgr/auth", aws.ToString(fake.in.SecretId))
	require.Equal(t, "local", os.Getenv("TEST_SECRET_KEPT"))
	require.Equal(t, "fresh", os.Getenv("TEST_SECRET_NEW"))
	require.Equal(t, "8081", os.Getenv("TEST_SECRET_PORT"))
	os.Unsetenv("TEST_SECRET_PORT")

	applied, err = applySecret(context.Background(), fake, "badgr/auth", true)
	require.NoError(t, err)
	require.Equal(t, 3, applied)
	require.Equal(t, "remote", os.Getenv("TEST_SECRET_KEPT"))
	os.Unsetenv("TEST_SECRET_PORT")
}

func TestApplySecret_Errors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeSecrets
	}{
		{"fetch fails", &fakeSecrets{err: errors.New("access denied")}},
		{"empty payload", &fakeSecrets{out: &secretsmanager.GetSecretValueOutput{}}},
		{"not json", &fakeSecrets{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("KEY=value")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applySecret(context.Background(), tt.fake, "badgr/auth", false)
			require.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_DOTENV_A=from-file\nTEST_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("AWS_SECRETS_MANAGER_SECRET_ID", "")
	t.Setenv("ENV_FILE_PATH", path)
	t.Setenv("TEST_DOTENV_A", "from-env")
	t.Setenv("TEST_DOTENV_B", "")
	os.Unsetenv("TEST_DOTENV_B")

	LoadEnv(context.Background(), ".env")
	require.Equal(t, "from-env", os.Getenv("TEST_DOTENV_A"))
	require.Equal(t, "from-file", os.Getenv("TEST_DOTENV_B"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv("ENV_FILE_PATH", filepath.Join(t.TempDir(), "missing.env"))
	require.NotPanics(t, func() { LoadEnv(context.Background(), ".env") })
}
