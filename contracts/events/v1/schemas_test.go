package v1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPaywallKey = strings.Repeat("ab", 32)

func TestValidatePayloadAcceptsLedgerEvents(t *testing.T) {
	cases := map[string]string{
		"paywall.created": `{"paywall_id":"x","creator_id":"alice","paywall_key":"` + testPaywallKey + `"}`,
		"paywall.updated": `{"paywall_id":"x","creator_id":"alice","paywall_key":"` + testPaywallKey + `","max_supply":0,"price_amount":1000}`,
		"paywall.minted": `{"paywall_id":"x","creator_id":"alice","paywall_key":"` + testPaywallKey + `",` +
			`"payer_id":"bob","amount_paid":1000,"fee_amount":100,"creator_amount":900}`,
	}
	for eventType, payload := range cases {
		assert.NoError(t, ValidatePayload(eventType, []byte(payload)), eventType)
	}
}

func TestValidatePayloadRejectsMalformedData(t *testing.T) {
	err := ValidatePayload("paywall.created", []byte(`{"paywall_id":"x","creator_id":"alice"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paywall_key")

	err = ValidatePayload("paywall.created", []byte(`{"paywall_id":"x","creator_id":"alice","paywall_key":"`+testPaywallKey+`","extra":1}`))
	assert.Error(t, err)

	err = ValidatePayload("paywall.minted", []byte(`{"paywall_id":"x","creator_id":"alice","paywall_key":"`+testPaywallKey+`",`+
		`"payer_id":"bob","amount_paid":-1,"fee_amount":0,"creator_amount":0}`))
	assert.Error(t, err)

	err = ValidatePayload("paywall.created", []byte(`{"paywall_id":"`+strings.Repeat("p", 51)+`","creator_id":"alice","paywall_key":"`+testPaywallKey+`"}`))
	assert.Error(t, err)
}

func TestSchemaUnknownEventType(t *testing.T) {
	_, err := Schema("paywall.deleted")
	assert.Error(t, err)
	assert.Error(t, ValidatePayload("paywall.deleted", []byte(`{}`)))
}

func TestCompiledSchemaIsParsedOnce(t *testing.T) {
	first, err := CompiledSchema("paywall.minted")
	require.NoError(t, err)
	second, err := CompiledSchema("paywall.minted")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := CompiledSchema("paywall.created")
	require.NoError(t, err)
	assert.NotSame(t, first, other)

	_, err = CompiledSchema("paywall.deleted")
	assert.Error(t, err)
	_, cached := compiled.Load("paywall.deleted")
	assert.False(t, cached)
}
