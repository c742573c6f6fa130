package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, withRegistrants bool) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Vendas"))
	rows := [][]interface{}{
		{"Data da Venda", "Pontos", "NF/Pedido", "CPF/CNPJ"},
		{45301, "R$ 1.234", "NF1", "123.456.789-00"},
		{nil, nil, nil, nil},
		{45302, 10.5, "NF2"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Vendas", cell, &row))
	}

	if withRegistrants {
		_, err := f.NewSheet("Novos Cadastrados")
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Novos Cadastrados", "A1", &[]interface{}{"CPF"}))
		require.NoError(t, f.SetSheetRow("Novos Cadastrados", "A2", &[]interface{}{"12345678900"}))
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, true)

	src, err := LoadWorkbook(path, "", "Novos Cadastrados")
	require.NoError(t, err)
	assert.Empty(t, src.Warnings)

	assert.Equal(t, []string{"Data da Venda", "Pontos", "NF/Pedido", "CPF/CNPJ"}, src.Sales.ColumnNames)
	require.Equal(t, 2, src.Sales.Len())
	assert.Equal(t, "45301", src.Sales.Value(0, 0))
	assert.Equal(t, "R$ 1.234", src.Sales.Value(0, 1))
	assert.Nil(t, src.Sales.Value(1, 3))

	require.Equal(t, 1, src.Registrants.Len())
	assert.Equal(t, "12345678900", src.Registrants.Value(0, 0))
}

func TestLoadWorkbookWithoutRegistrantSheetWarns(t *testing.T) {
	path := writeWorkbook(t, false)

	src, err := LoadWorkbook(path, "Vendas", "Novos Cadastrados")
	require.NoError(t, err)
	assert.Equal(t, 2, src.Sales.Len())
	assert.True(t, src.Registrants.IsEmpty())
	require.Len(t, src.Warnings, 1)
	assert.True(t, IsMissingSheet(src.Warnings[0]))
}

func TestLoadWorkbookErrors(t *testing.T) {
	src, err := LoadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"), "", "")
	assert.True(t, IsMissingSource(err))
	assert.True(t, src.Sales.IsEmpty())
	assert.True(t, src.Registrants.IsEmpty())

	path := writeWorkbook(t, true)
	_, err = LoadWorkbook(path, "Other", "Novos Cadastrados")
	assert.True(t, IsMissingSheet(err))
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	salesPath := filepath.Join(dir, "sales.csv")
	registrantsPath := filepath.Join(dir, "registrants.csv")
	require.NoError(t, os.WriteFile(salesPath, []byte("\ufeffData da Venda,Pontos,Loja\n2024-01-10,\"1.234,5\",A\n,,\n2024-02-01,7\n"), 0o644))
	require.NoError(t, os.WriteFile(registrantsPath, []byte("CPF\n123\n"), 0o644))

	src, err := Load(salesPath, Options{RegistrantsPath: registrantsPath})
	require.NoError(t, err)
	assert.Empty(t, src.Warnings)
	assert.Equal(t, []string{"Data da Venda", "Pontos", "Loja"}, src.Sales.ColumnNames)
	require.Equal(t, 2, src.Sales.Len())
	assert.Equal(t, "1.234,5", src.Sales.Value(0, 1))
	assert.Nil(t, src.Sales.Value(1, 2))
	assert.Equal(t, 1, src.Registrants.Len())

	src, err = LoadCSV(salesPath, filepath.Join(dir, "missing.csv"))
	require.NoError(t, err)
	require.Len(t, src.Warnings, 1)
	assert.True(t, IsMissingSheet(src.Warnings[0]))
	assert.True(t, src.Registrants.IsEmpty())
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	salesPath := filepath.Join(dir, "sales.json")
	registrantsPath := filepath.Join(dir, "registrants.json")
	require.NoError(t, os.WriteFile(salesPath, []byte(`{"column_names":["Data da Venda","Pontos"],"rows":[["2024-01-10",150.5],[45302,null]]}`), 0o644))
	require.NoError(t, os.WriteFile(registrantsPath, []byte(`{"column_names":["CPF"],"rows":[["123"]]}`), 0o644))

	src, err := Load(salesPath, Options{RegistrantsPath: registrantsPath})
	require.NoError(t, err)
	assert.Empty(t, src.Warnings)
	require.Equal(t, 2, src.Sales.Len())
	assert.Equal(t, 150.5, src.Sales.Value(0, 1))
	assert.Equal(t, 45302.0, src.Sales.Value(1, 0))
	assert.Nil(t, src.Sales.Value(1, 1))
	assert.Equal(t, 1, src.Registrants.Len())

	_, err = LoadJSON(filepath.Join(dir, "missing.json"), "")
	assert.True(t, IsMissingSource(err))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("not json"), 0o644))
	_, err = LoadJSON(broken, "")
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, LoadReadError, le.Code)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load("sales.parquet", Options{})
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, LoadReadError, le.Code)
}

func TestErrorHelpers(t *testing.T) {
	err := MissingColumn("Novos Cadastrados", "CPF")
	assert.True(t, IsMissingColumn(err))
	assert.False(t, IsMissingSheet(err))
	assert.Contains(t, err.Error(), "CPF")
	assert.False(t, IsMissingSource(nil))
}
