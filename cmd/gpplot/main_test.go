package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildItems(t *testing.T) {
	exprs = []string{"sin(x)"}
	style, using, title, noTitle = "lines", "1:2", "", true
	defer func() {
		exprs = nil
		style, using, title, noTitle = "", "", "", false
	}()

	book := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", 1)
	f.SetCellValue("Sheet1", "B1", 2)
	require.NoError(t, f.SaveAs(book))
	f.Close()

	yes := true
	opts := gnuplot.DefaultOptions()
	opts.PreferInlineData = &yes
	var buf bytes.Buffer
	session := gnuplot.NewWithWriter(&buf, opts)

	items, err := buildItems(session, []string{"points.dat", book})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, gnuplot.KindFunc, items[0].Kind())
	assert.Equal(t, gnuplot.KindFile, items[1].Kind())
	assert.Equal(t, gnuplot.KindData, items[2].Kind())

	frag, _, err := items[0].Render()
	require.NoError(t, err)
	assert.Equal(t, "sin(x) notitle with lines", frag)

	frag, body, err := items[2].Render()
	require.NoError(t, err)
	assert.Equal(t, gnuplot.StdinPlaceholder+" using 1:2 notitle with lines", frag)
	assert.Equal(t, "1 2\n\n", string(body))
}

func TestSetupTracingRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, setupTracing("Verbose"))
	assert.NoError(t, setupTracing("Error"))
}
