package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kisunla-flowsheet/internal/router"
)

func TestHTTP_EndToEnd_Flowsheet(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	clinicianID := "clinician-1"

	// 1) Clínico abre sesión
	sessionID := createSession(t, ts.URL, clinicianID, "")

	// 2) Sin identidad => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/infusions", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user, got %d", st)
		}
	}

	// 3) Sesión recién abierta: latest vacío => 204
	for _, path := range []string{"/infusions/latest", "/mri/latest", "/aria/latest"} {
		st, _ := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+path, clinicianID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 latest on empty log %s, got %d", path, st)
		}
	}

	// 4) Primera infusión: sin dose_mg, titulación asigna 350mg/20mL
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/infusions", clinicianID, map[string]any{
			"number": 1,
			"date":   "2026-01-05",
			"notes":  "first dose",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 append infusion, got %d body=%s", st, string(body))
		}

		var resp struct {
			ID       int     `json:"id"`
			DoseMg   float64 `json:"dose_mg"`
			VolumeMl float64 `json:"volume_ml"`
			Status   string  `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != 1 || resp.DoseMg != 350 || resp.VolumeMl != 20 || resp.Status != "completed" {
			t.Fatalf("first infusion mismatch: %+v body=%s", resp, string(body))
		}
	}

	// 5) Segunda infusión: 700mg/40mL, id 2
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/infusions", clinicianID, map[string]any{
			"number": 2,
			"date":   "2026-02-02",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 second infusion, got %d body=%s", st, string(body))
		}

		var resp struct {
			ID       int     `json:"id"`
			DoseMg   float64 `json:"dose_mg"`
			VolumeMl float64 `json:"volume_ml"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != 2 || resp.DoseMg != 700 || resp.VolumeMl != 40 {
			t.Fatalf("second infusion mismatch: %+v", resp)
		}
	}

	// 6) Listado: más reciente primero
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/infusions", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list infusions, got %d body=%s", st, string(body))
		}

		var list []struct {
			ID int `json:"id"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 2 || list[0].ID != 2 || list[1].ID != 1 {
			t.Fatalf("expected [2 1] newest first, got %s", string(body))
		}
	}

	// 7) Edición por ID
	{
		st, body := doReq(t, ts.URL, "PUT", "/sessions/"+sessionID+"/infusions/1", clinicianID, map[string]any{
			"number": 1,
			"date":   "2026-01-06",
			"notes":  "date corrected",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update infusion, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "PUT", "/sessions/"+sessionID+"/infusions/99", clinicianID, map[string]any{
			"number": 1,
			"date":   "2026-01-06",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 updating missing infusion, got %d", st)
		}
	}

	// 8) MRI: alta, tipo inválido y listado con recordatorio
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/mri", clinicianID, map[string]any{
			"date":  "2026-01-02",
			"type":  "Baseline",
			"notes": "pre-treatment",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 append mri, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/mri", clinicianID, map[string]any{
			"date": "2026-01-02",
			"type": "Routine",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown scan type, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/mri", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list mri, got %d body=%s", st, string(body))
		}

		var resp struct {
			Reminder struct {
				Required string `json:"required"`
			} `json:"reminder"`
			Records []struct {
				ID int `json:"id"`
			} `json:"records"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Reminder.Required == "" || len(resp.Records) != 1 || resp.Records[0].ID != 1 {
			t.Fatalf("mri list mismatch: %s", string(body))
		}
	}

	// 9) ARIA: alta válida y síntoma fuera de catálogo
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/aria", clinicianID, map[string]any{
			"date": "2026-02-02",
			"aria_e": map[string]any{
				"flair_severity":    "Mild",
				"clinical_severity": "Asymptomatic",
			},
			"aria_h": map[string]any{
				"microhemorrhages": "None",
				"siderosis":        "None",
			},
			"symptoms": []string{"Headache"},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 append aria, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/aria", clinicianID, map[string]any{
			"date": "2026-02-02",
			"aria_e": map[string]any{
				"flair_severity":    "None",
				"clinical_severity": "Asymptomatic",
			},
			"aria_h": map[string]any{
				"microhemorrhages": "None",
				"siderosis":        "None",
			},
			"symptoms": []string{"Dizzyness"},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown symptom, got %d", st)
		}
	}

	// 10) Perfil: defaults en primer acceso, luego PATCH parcial
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/profile", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get profile, got %d body=%s", st, string(body))
		}

		var resp struct {
			ApoE4Status string `json:"apoe4_status"`
			HighRisk    bool   `json:"high_risk"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ApoE4Status != "Not Tested" || resp.HighRisk {
			t.Fatalf("profile defaults mismatch: %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "PATCH", "/sessions/"+sessionID+"/profile", clinicianID, map[string]any{
			"apoe4_status":      "Homozygote (e4/e4)",
			"overall_aria_risk": "45%",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch profile, got %d body=%s", st, string(body))
		}

		var resp struct {
			ApoE4Status     string `json:"apoe4_status"`
			HighRisk        bool   `json:"high_risk"`
			OverallAriaRisk string `json:"overall_aria_risk"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.HighRisk || resp.OverallAriaRisk != "45%" {
			t.Fatalf("patched profile mismatch: %s", string(body))
		}
	}

	// 11) Resumen: arma los "latest" de cada colección
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/summary", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 summary, got %d body=%s", st, string(body))
		}

		var resp struct {
			CurrentInfusion *struct {
				Number int     `json:"number"`
				DoseMg float64 `json:"dose_mg"`
			} `json:"current_infusion"`
			DosingSchedule []struct {
				Label string `json:"label"`
			} `json:"dosing_schedule"`
			Profile struct {
				HighRisk bool `json:"high_risk"`
			} `json:"profile"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CurrentInfusion == nil || resp.CurrentInfusion.Number != 2 || resp.CurrentInfusion.DoseMg != 700 {
			t.Fatalf("summary current infusion mismatch: %s", string(body))
		}
		if len(resp.DosingSchedule) != 4 || !resp.Profile.HighRisk {
			t.Fatalf("summary schedule/profile mismatch: %s", string(body))
		}
	}
}

func TestHTTP_SeededSession_ContinuesIDs(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	clinicianID := "clinician-1"
	sessionID := createSession(t, ts.URL, clinicianID, "?seed=1")

	// Historia precargada: infusión 21 arriba, la 17 con sus 30.0 mL manuales
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/infusions", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list seeded infusions, got %d body=%s", st, string(body))
		}

		var list []struct {
			ID       int     `json:"id"`
			DoseMg   float64 `json:"dose_mg"`
			VolumeMl float64 `json:"volume_ml"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 5 || list[0].ID != 21 {
			t.Fatalf("seeded infusions mismatch: %s", string(body))
		}
		last := list[len(list)-1]
		if last.ID != 17 || last.DoseMg != 1050 || last.VolumeMl != 30.0 {
			t.Fatalf("infusion 17 should keep its manual 30.0 mL, got %+v", last)
		}
	}

	// El próximo alta continúa la numeración: id 22
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/infusions", clinicianID, map[string]any{
			"number": 22,
			"date":   "2025-09-10",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 append on seeded session, got %d body=%s", st, string(body))
		}

		var resp struct {
			ID     int     `json:"id"`
			DoseMg float64 `json:"dose_mg"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != 22 || resp.DoseMg != 1400 {
			t.Fatalf("expected id 22 with maintenance dose, got %+v", resp)
		}
	}

	// MRI y ARIA demo presentes
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/mri", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 seeded mri, got %d body=%s", st, string(body))
		}

		var resp struct {
			Records []struct {
				ID int `json:"id"`
			} `json:"records"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Records) != 5 || resp.Records[0].ID != 5 {
			t.Fatalf("seeded mri mismatch: %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/aria/latest", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 seeded aria latest, got %d body=%s", st, string(body))
		}
	}

	// Perfil demo
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/profile", clinicianID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 seeded profile, got %d body=%s", st, string(body))
		}

		var resp struct {
			CMSRegistryID string `json:"cms_registry_id"`
			HighRisk      bool   `json:"high_risk"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CMSRegistryID != "123445" || !resp.HighRisk {
			t.Fatalf("seeded profile mismatch: %s", string(body))
		}
	}
}

func TestHTTP_SessionIsolation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	clinicianID := "clinician-1"
	a := createSession(t, ts.URL, clinicianID, "")
	b := createSession(t, ts.URL, clinicianID, "")

	st, body := doReq(t, ts.URL, "POST", "/sessions/"+a+"/infusions", clinicianID, map[string]any{
		"number": 1,
		"date":   "2026-01-05",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	// La otra sesión sigue vacía
	st, _ = doReq(t, ts.URL, "GET", "/sessions/"+b+"/infusions/latest", clinicianID, nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 on fresh session, got %d", st)
	}
}

func TestHTTP_DosingIsPublic(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// La tabla de dosificación es información de prospecto: sin auth
	{
		st, body := doReq(t, ts.URL, "GET", "/dosing/schedule", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dosing schedule, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/dosing/calc?number=7", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dosing calc, got %d body=%s", st, string(body))
		}

		var resp struct {
			DoseMg   float64 `json:"dose_mg"`
			VolumeMl float64 `json:"volume_ml"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.DoseMg != 1400 || resp.VolumeMl != 80 {
			t.Fatalf("calc mismatch: %s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/dosing/calc?number=0", "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for number=0, got %d", st)
		}
	}
}

func createSession(t *testing.T, baseURL, userID, query string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/sessions"+query, userID, nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create session, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create session: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
