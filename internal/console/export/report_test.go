package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"crm-console/internal/crmclient"
)

func TestReportBytes(t *testing.T) {
	rows := []crmclient.AgentReport{
		{UserName: "Ann", UserEmail: "ann@example.com", Total: 5, Pending: 1, Working: 2, Completed: 2},
		{UserName: "Bob", UserEmail: "bob@example.com", Total: 3, Pending: 3},
	}
	data, err := ReportBytes(rows, crmclient.ReportOverall{Total: 8, Pending: 4, Working: 2, Completed: 2})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Agent", "Email", "Total", "Pending", "Working", "Completed"}, got[0])
	assert.Equal(t, []string{"Ann", "ann@example.com", "5", "1", "2", "2"}, got[1])
	assert.Equal(t, []string{"Overall", "", "8", "4", "2", "2"}, got[3])
}

func TestReportBytes_Empty(t *testing.T) {
	data, err := ReportBytes(nil, crmclient.ReportOverall{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
