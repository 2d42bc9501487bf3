package aws

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	values map[string]string
	calls  int
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	v, ok := f.values[*in.SecretId]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: sdkaws.String(v)}, nil
}

func TestGetSecret_CachesValue(t *testing.T) {
	fake := &fakeSecrets{values: map[string]string{"store/GOOGLE_MAPS_API_KEY": "k1"}}
	sc := newSecretsClient(fake)

	for n := 0; n < 3; n++ {
		v, err := sc.GetSecret(context.Background(), "store/GOOGLE_MAPS_API_KEY")
		require.NoError(t, err)
		assert.Equal(t, "k1", v)
	}
	assert.Equal(t, 1, fake.calls)

	_, err := sc.GetSecret(context.Background(), "missing")
	assert.ErrorContains(t, err, "failed to get secret missing")
}

func TestGetSecretMap(t *testing.T) {
	fake := &fakeSecrets{values: map[string]string{
		"store/DB_CREDENTIALS": `{"POSTGRES_USER":"app","POSTGRES_PASSWORD":"pw"}`,
		"broken":               `not-json`,
	}}
	sc := newSecretsClient(fake)

	m, err := sc.GetSecretMap(context.Background(), "store/DB_CREDENTIALS")
	require.NoError(t, err)
	assert.Equal(t, "app", m["POSTGRES_USER"])

	_, err = sc.GetSecretMap(context.Background(), "broken")
	assert.Error(t, err)
}

type fakePutter struct {
	mu    sync.Mutex
	input []*cloudwatch.PutMetricDataInput
	err   error
}

func (f *fakePutter) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = append(f.input, in)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestMetricsClient_Disabled(t *testing.T) {
	fake := &fakePutter{}
	m := &MetricsClient{client: fake, namespace: "ns"}

	require.NoError(t, m.RecordCount(context.Background(), MetricHTTPRequests, nil))
	assert.Empty(t, fake.input)

	var nilClient *MetricsClient
	assert.False(t, nilClient.IsEnabled())
}

func TestMetricsClient_RecordLatency(t *testing.T) {
	fake := &fakePutter{}
	m := &MetricsClient{client: fake, namespace: "ns", enabled: true}

	err := m.RecordLatency(context.Background(), MetricHTTPLatency, 1500*time.Millisecond, map[string]string{"Path": "/store", "Method": "GET"})
	require.NoError(t, err)

	require.Len(t, fake.input, 1)
	in := fake.input[0]
	assert.Equal(t, "ns", *in.Namespace)
	datum := in.MetricData[0]
	assert.Equal(t, MetricHTTPLatency, *datum.MetricName)
	assert.Equal(t, 1500.0, *datum.Value)
	assert.Equal(t, types.StandardUnitMilliseconds, datum.Unit)
	require.Len(t, datum.Dimensions, 2)
	assert.Equal(t, "Method", *datum.Dimensions[0].Name)
	assert.Equal(t, "Path", *datum.Dimensions[1].Name)
}

func TestMetricsClient_WrapsError(t *testing.T) {
	m := &MetricsClient{client: &fakePutter{err: errors.New("throttled")}, namespace: "ns", enabled: true}
	err := m.RecordCount(context.Background(), MetricHTTPErrors, nil)
	assert.ErrorContains(t, err, "throttled")
}

func TestApplyEndpoint(t *testing.T) {
	var cfg sdkaws.Config
	applyEndpoint(&cfg, "")
	assert.Nil(t, cfg.BaseEndpoint)

	applyEndpoint(&cfg, "http://localhost:4566")
	require.NotNil(t, cfg.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *cfg.BaseEndpoint)
}
