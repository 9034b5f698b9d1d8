package kvstorepb

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValueResponseKeepsNotFoundApartFromNull(t *testing.T) {
	for _, resp := range []*GetValueResponse{
		{Value: "null"},
		{Value: ""},
		{NotFound: true},
	} {
		data, err := proto.Marshal(resp)
		require.Nil(t, err)
		var got GetValueResponse
		require.Nil(t, proto.Unmarshal(data, &got))
		assert.Equal(t, resp.GetValue(), got.GetValue())
		assert.Equal(t, resp.GetNotFound(), got.GetNotFound())
	}
}

func TestPutValueRequestCarriesRequestContext(t *testing.T) {
	req := &PutValueRequest{Key: "k", Value: "v", RequestId: "c-1-1", ClientId: "c"}
	data, err := proto.Marshal(req)
	require.Nil(t, err)
	var got PutValueRequest
	require.Nil(t, proto.Unmarshal(data, &got))
	assert.Equal(t, "k", got.GetKey())
	assert.Equal(t, "v", got.GetValue())
	assert.Equal(t, "c-1-1", got.GetRequestId())
	assert.Equal(t, "c", got.GetClientId())
}
