package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCsvFieldQuotesOnTriggerChars(t *testing.T) {
	require.Equal(t, `"he said ""hi"", ok"`, csvField(`he said "hi", ok`))
	require.Equal(t, "plain", csvField("plain"))
	require.Equal(t, "\"a\tb\"", csvField("a\tb"))
}

func TestCsvOutDistinguishesNullFromEmpty(t *testing.T) {
	require.Equal(t, "", csvOut("x", true))
	require.Equal(t, `""`, csvOut("", false))
	require.Equal(t, "hi", csvOut("hi", false))
}

func TestTsvcFieldCollapsesEmbeddedNewlines(t *testing.T) {
	require.Equal(t, "a b", tsvcField("a\nb"))
	require.Equal(t, "a b", tsvcField("a\r\nb"))
}

func TestSqlLiteralPassesKeywordsAndNumbersBare(t *testing.T) {
	require.Equal(t, "NULL", sqlLiteral("NULL"))
	require.Equal(t, "null", sqlLiteral("null"))
	require.Equal(t, "42", sqlLiteral("42"))
	require.Equal(t, "3.14", sqlLiteral("3.14"))
	require.Equal(t, "'O''Brien'", sqlLiteral("O'Brien"))
	require.Equal(t, "'hello'", sqlLiteral("hello"))
}

func TestIsPlainSQLNumberRejectsSignsAndMultipleDots(t *testing.T) {
	require.False(t, isPlainSQLNumber("-1"))
	require.False(t, isPlainSQLNumber("1.2.3"))
	require.False(t, isPlainSQLNumber(""))
	require.True(t, isPlainSQLNumber("."))
}

func TestSqlOutRendersNullKeywordForNullValues(t *testing.T) {
	require.Equal(t, "NULL", sqlOut("anything", true))
	require.Equal(t, "42", sqlOut("42", false))
}

func TestQuoteIdentifierQuotesNonLowercaseLeadOrMixedCase(t *testing.T) {
	require.Equal(t, "customer_id", quoteIdentifier("customer_id"))
	require.Equal(t, `"Customer"`, quoteIdentifier("Customer"))
	require.Equal(t, `"1col"`, quoteIdentifier("1col"))
	require.Equal(t, `"has space"`, quoteIdentifier("has space"))
	require.Equal(t, `"with""quote"`, quoteIdentifier(`with"quote`))
}

func TestIdentifierNeedsQuotingAcceptsPlainLowercaseIdent(t *testing.T) {
	require.False(t, identifierNeedsQuoting("a_b9"))
	require.True(t, identifierNeedsQuoting("_a"))
	require.True(t, identifierNeedsQuoting("9a"))
	require.True(t, identifierNeedsQuoting(""))
}
