package aneel

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/calculadora-energia/internal/models"
)

var now = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

const tariffsJSON = `{"success": true, "result": {"total": 9, "records": [
	{"SigAgente": "ENEL SP", "DscSubGrupo": "B1", "DscClasse": "Residencial", "DscModalidadeTarifaria": "Convencional",
	 "DatInicioVigencia": "2024-07-04", "DatFimVigencia": "2025-07-03", "VlrTUSD": "383,21", "VlrTE": "271,34"},
	{"SigAgente": "ENEL SP", "DscSubGrupo": "B1", "DscClasse": "Residencial", "DscModalidadeTarifaria": "Convencional",
	 "DatInicioVigencia": "2023-07-04", "DatFimVigencia": "2024-07-03", "VlrTUSD": "350,00", "VlrTE": "250,00"},
	{"SigAgente": "CPFL-PIRATININGA", "DscSubGrupo": "B1", "DscClasse": "N/A", "DscModalidadeTarifaria": "Convencional",
	 "DatInicioVigencia": "2024-10-23", "DatFimVigencia": "2025-04-22", "VlrTUSD": "400,00", "VlrTE": "280,00"},
	{"SigAgente": "CEMIG-D", "DscSubGrupo": "N/A", "DscClasse": "Residencial", "DscModalidadeTarifaria": "N/A",
	 "DatInicioVigencia": "2024-05-28", "DatFimVigencia": "2025-05-27", "VlrTUSD": "500,00", "VlrTE": "300,00"},
	{"SigAgente": "CEMIG-D", "DscSubGrupo": "B1", "DscClasse": "Residencial", "DscModalidadeTarifaria": "Convencional",
	 "DatInicioVigencia": "2024-06-01T00:00:00", "DatFimVigencia": "2025-06-30T00:00:00", "VlrTUSD": 510, "VlrTE": 300},
	{"SigAgente": "CEMIG-D", "DscSubGrupo": "A4", "DscClasse": "Industrial", "DscModalidadeTarifaria": "Azul",
	 "DatInicioVigencia": "2024-05-28", "DatFimVigencia": "2026-05-27", "VlrTUSD": "900,00", "VlrTE": "300,00"},
	{"SigAgente": "XYZ ENERGIA", "DscSubGrupo": "B1", "DscClasse": "Residencial", "DscModalidadeTarifaria": "Convencional",
	 "DatInicioVigencia": "2024-05-28", "DatFimVigencia": "2025-05-27", "VlrTUSD": "500,00", "VlrTE": "300,00"},
	{"SigAgente": "CEA", "DscSubGrupo": "B1", "DscClasse": "Residencial", "DscModalidadeTarifaria": "Convencional",
	 "DatInicioVigencia": "2024-12-13", "DatFimVigencia": "2025-12-12", "VlrTUSD": "N/A", "VlrTE": null},
	{"SigAgente": "LIGHT SESA", "DscSubGrupo": "B1", "DscClasse": "Residencial", "DscModalidadeTarifaria": "Convencional",
	 "DatInicioVigencia": "2024-03-15", "DatFimVigencia": "sem data", "VlrTUSD": "500,00", "VlrTE": "300,00"}
]}}`

const flagsJSON = `{"success": true, "result": {"total": 3, "records": [
	{"DatCompetencia": "2024-11-01", "NomBandeiraAcionada": "Amarela", "VlrAdicionalBandeira": "18,85"},
	{"DatCompetencia": "2024-12-01", "NomBandeiraAcionada": "Vermelha P1", "VlrAdicionalBandeira": "44,63"},
	{"DatCompetencia": "2024-10-01", "NomBandeiraAcionada": "Vermelha P2", "VlrAdicionalBandeira": "78,77"}
]}}`

func TestBuildTable(t *testing.T) {
	var body searchResponse[TariffRecord]
	require.NoError(t, json.Unmarshal([]byte(tariffsJSON), &body))

	got := BuildTable(body.Result.Records, now)
	want := []models.Tariff{
		{State: "MG", Distributor: "CEMIG-D", TariffPerKwh: 0.81, TUSD: 0.51, TE: 0.3, ValidUntil: date("2025-06-30")},
		{State: "SP", Distributor: "ENEL SP", TariffPerKwh: 0.65455, TUSD: 0.38321, TE: 0.27134, ValidUntil: date("2025-07-03")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildTable mismatch (-want +got):\n%s", diff)
	}
}

func TestStateFor(t *testing.T) {
	cases := map[string]string{
		"ENEL SP":                        "SP",
		"Enel São Paulo":                 "SP",
		"CEMIG-D":                        "MG",
		"CEMIG DISTRIBUICAO S.A.":        "MG",
		"LIGHT SERVIÇOS DE ELETRICIDADE": "RJ",
		"RGE":                            "RS",
		"energisa ms":                    "MS",
		"EQUATORIAL PARÁ":                "PA",
	}
	for in, want := range cases {
		got, ok := StateFor(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "XYZ ENERGIA", "---"} {
		_, ok := StateFor(in)
		assert.False(t, ok, in)
	}
}

func TestParseValue(t *testing.T) {
	cases := map[Text]string{
		"179,08":   "179.08",
		"1.234,56": "1234.56",
		"0.5":      "0.5",
		"N/A":      "0",
		"":         "0",
		"42":       "42",
	}
	for in, want := range cases {
		d, err := ParseValue(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d.String(), in)
	}

	_, err := ParseValue("abc")
	assert.Error(t, err)
}

func TestLatestFlag(t *testing.T) {
	var body searchResponse[FlagRecord]
	require.NoError(t, json.Unmarshal([]byte(flagsJSON), &body))

	f, ok := LatestFlag(body.Result.Records)
	require.True(t, ok)
	assert.Equal(t, "Vermelha Patamar 1", f.Name)
	assert.InDelta(t, 0.04463, f.ValuePerKwh, 1e-9)
	assert.Equal(t, "Dezembro de 2024", f.ReferenceMonth)

	// layout antigo, já em R$/kWh
	old := []FlagRecord{{SigBandeiraTarifaria: "VERDE", ValorBandeira: "0", DatInicioVigencia: "2024-05-01"}}
	f, ok = LatestFlag(old)
	require.True(t, ok)
	assert.Equal(t, "Verde", f.Name)
	assert.Zero(t, f.ValuePerKwh)

	_, ok = LatestFlag(nil)
	assert.False(t, ok)
}

func TestReferenceMonth(t *testing.T) {
	assert.Equal(t, "Março de 2025", ReferenceMonth(date("2025-03-31")))
}

func TestText_Unmarshal(t *testing.T) {
	var v struct {
		A, B, C, D Text
	}
	require.NoError(t, json.Unmarshal([]byte(`{"A":" x ","B":12.5,"C":null,"D":true}`), &v))
	assert.Equal(t, Text("x"), v.A)
	assert.Equal(t, Text("12.5"), v.B)
	assert.Equal(t, Text(""), v.C)
	assert.Equal(t, Text("true"), v.D)
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func ckanServer(t *testing.T, tariffs, flags http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != searchPath {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Query().Get("resource_id") {
		case TariffResource:
			tariffs(w, r)
		case FlagResource:
			flags(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, 500, quietLogger())
}

func writeBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, body) }
}

func TestClient_Snapshot(t *testing.T) {
	c := ckanServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "B1", r.URL.Query().Get("q"))
			assert.Equal(t, "500", r.URL.Query().Get("limit"))
			_, _ = io.WriteString(w, tariffsJSON)
		},
		writeBody(flagsJSON),
	)

	snap, err := c.Snapshot(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 9, snap.Records)
	require.Len(t, snap.Tariffs, 2)
	require.NotNil(t, snap.Flag)
	assert.Equal(t, "Vermelha Patamar 1", snap.Flag.Name)
}

func TestClient_Snapshot_FlagFailureIsNotFatal(t *testing.T) {
	c := ckanServer(t, writeBody(tariffsJSON), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	snap, err := c.Snapshot(context.Background(), now)
	require.NoError(t, err)
	assert.Nil(t, snap.Flag)
	assert.Len(t, snap.Tariffs, 2)
}

func TestClient_Snapshot_Errors(t *testing.T) {
	c := ckanServer(t, writeBody(`{"success": false, "error": {"message": "boom"}}`), writeBody(flagsJSON))
	_, err := c.Snapshot(context.Background(), now)
	assert.Error(t, err)

	c = ckanServer(t, writeBody(`{"success": true, "result": {"records": [], "total": 0}}`), writeBody(flagsJSON))
	_, err = c.Snapshot(context.Background(), now)
	assert.True(t, errors.Is(err, ErrNoTariffs), "got %v", err)
}
