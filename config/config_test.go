package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":             "8080",
		"BAD_INT":          "eight",
		"SECURE":           "true",
		"ACCEPTED_ORIGINS": "https://a.dev, ,https://b.dev",
		"EMPTY":            "",
	}

	assert.Equal(t, 8080, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(nil, "PORT", 1))
	assert.True(t, GetBool(cfg, "SECURE", false))
	assert.False(t, GetBool(cfg, "MISSING", false))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetList(cfg, "ACCEPTED_ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetList(cfg, "MISSING", []string{"*"}))
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_KEY", "a=b")
	assert.Equal(t, "a=b", New()["PORTFOLIO_TEST_KEY"])
}

type fakeSSM struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestMergeSSM(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/SUPABASE_JWT_SECRET"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/portfolio/prod/PORT"), Value: aws.String("9000")}},
	}}
	cfg := map[string]string{"PORT": "8080", "DB_TYPE": "supa"}

	n, err := MergeSSM(context.Background(), client, "/portfolio/prod", cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "s3cret", cfg["SUPABASE_JWT_SECRET"])
	assert.Equal(t, "9000", cfg["PORT"])
	assert.Equal(t, "supa", cfg["DB_TYPE"])
}

func TestMergeSSMSkipsWithoutPrefix(t *testing.T) {
	client := &fakeSSM{err: errors.New("should not be called")}
	n, err := MergeSSM(context.Background(), client, "", map[string]string{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMergeSSMError(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}
	_, err := MergeSSM(context.Background(), client, "/portfolio", map[string]string{})
	assert.ErrorContains(t, err, "access denied")
}
