package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_Sample(t *testing.T) {
	s, err := ParseFile(filepath.Join("testdata", "sample.df"))
	require.NoError(t, err)

	assert.Equal(t, []string{"next_cust", "next_order"}, s.Sequences)
	assert.Equal(t, []string{"customer", "order", "shipment"}, s.TableNames())

	cust, ok := s.Table("customer")
	require.True(t, ok)
	assert.Equal(t, "Customer master.\nHolds billing and shipping details.", cust.Description)
	assert.False(t, cust.Implicit)
	require.Len(t, cust.Fields, 2)
	assert.Equal(t, Field{Name: "cust_num", Type: "integer", ColumnLabel: "Cust#", Help: "Enter the customer number"}, cust.Fields[0])
	assert.Equal(t, Field{Name: "name", Type: "character", ColumnLabel: "Name"}, cust.Fields[1])

	order, _ := s.Table("order")
	assert.Equal(t, "Sales orders", order.Description)
	assert.Equal(t, []Field{
		{Name: "order_num", Type: "integer", Help: "Order number"},
		{Name: "order_date", Type: "date"},
	}, order.Fields)

	ship, _ := s.Table("shipment")
	assert.True(t, ship.Implicit)
	assert.Equal(t, "", ship.Description)
	assert.Equal(t, []Field{{Name: "ship_to", Type: "character", ColumnLabel: "Ship To"}}, ship.Fields)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.df"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseFile_AutoDetectsLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.df")
	content := []byte("ADD TABLE \"caf\xe9\"\nDESCRIPTION \"Stra\xdfe\"\n.\nPSC\ncpstream=ISO8859-1\n.\n0000000099\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	s, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, s.TableNames())
	d, _ := s.Description("café")
	assert.Equal(t, "Straße", d)
}

func TestParseFile_ExplicitEncodingOverridesTrailer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp1252.df")
	content := []byte("ADD TABLE \"t\"\nDESCRIPTION \"\x80 price\"\ncpstream=UTF-8\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	s, err := ParseFile(path, WithEncoding("1252"))
	require.NoError(t, err)
	d, _ := s.Description("t")
	assert.Equal(t, "€ price", d)
}

func TestParseFile_InvalidUTF8IsDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.df")
	content := []byte("ADD TABLE \"ok\"\nADD TABLE \"bad\xff\"\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 2, de.Line)
	assert.Equal(t, EncodingUTF8, de.Encoding)
}

func TestParse_UnknownEncoding(t *testing.T) {
	_, err := Parse(strings.NewReader(`ADD TABLE "t"`), WithEncoding("klingon-8"))
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
}

func TestParse_CRLFAndBOM(t *testing.T) {
	input := "\ufeffADD TABLE \"T\"\r\nDESCRIPTION \"one\r\ntwo\"\r\nADD FIELD \"f\" OF \"T\" AS integer\r\n"
	s, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	d, _ := s.Description("T")
	assert.Equal(t, "one\ntwo", d)
	assert.Len(t, s.Fields("T"), 1)
}

func TestParse_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	input := "ADD TABLE \"T\"\nDESCRIPTION \"" + long + "\"\n"
	s, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	d, _ := s.Description("T")
	assert.Len(t, d, len(long))
}

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name     string
		wantNil  bool
		wantFail bool
	}{
		{name: "", wantNil: true},
		{name: "UTF-8", wantNil: true},
		{name: "utf8", wantNil: true},
		{name: "ISO8859-1"},
		{name: "iso-8859-15"},
		{name: "1252"},
		{name: "IBM850"},
		{name: "windows-1250"},
		{name: "undefined", wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, canonical, err := LookupEncoding(tt.name)
			if tt.wantFail {
				assert.ErrorIs(t, err, ErrUnknownEncoding)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, canonical)
			assert.Equal(t, tt.wantNil, enc == nil)
		})
	}
}
