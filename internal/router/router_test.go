package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dog-show-club/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ShowFlow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Admin carga data de referencia
	breedID := createEntity(t, ts.URL, "admin-1", "admin", "/api/breeds", map[string]any{
		"name_pl":    "Owczarek niemiecki",
		"name_en":    "German Shepherd",
		"fci_group":  1,
		"fci_number": 166,
	})
	judgeID := createEntity(t, ts.URL, "admin-1", "admin", "/api/judges", map[string]any{
		"first_name":     "Jan",
		"last_name":      "Kowalski",
		"license_number": "PL-123",
		"fci_groups":     []int{1, 2},
	})

	// 2) Member registra dueño y perro
	ownerID := createEntity(t, ts.URL, "member-1", "member", "/api/owners", map[string]any{
		"first_name":   "Anna",
		"last_name":    "Nowak",
		"email":        "anna@example.com",
		"gdpr_consent": true,
	})
	dogID := createEntity(t, ts.URL, "member-1", "member", "/api/dogs", map[string]any{
		"name":       "Burek",
		"breed_id":   breedID,
		"gender":     "male",
		"birth_date": "2023-05-01",
		"microchip":  "616093900012345",
		"owners":     []map[string]any{{"owner_id": ownerID, "is_primary": true}},
	})

	// 3) Organizer crea la show y abre inscripción
	showID := createEntity(t, ts.URL, "org-1", "organizer", "/api/shows", map[string]any{
		"name":      "Wystawa Krajowa Warszawa",
		"show_date": "2026-06-20",
		"location":  "Warszawa",
	})
	{
		st, body := doReq(t, ts.URL, "PATCH", "/api/shows/"+showID+"/status", "org-1", "organizer", map[string]any{
			"status": "open_for_registration",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 opening show, got %d body=%s", st, string(body))
		}
	}

	// 4) Secretario queda asignado a la raza
	{
		st, body := doReq(t, ts.URL, "POST", "/api/shows/"+showID+"/assignments", "org-1", "organizer", map[string]any{
			"secretary_user_id": "sec-1",
			"breed_id":          breedID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 assignment, got %d body=%s", st, string(body))
		}
	}

	// 5) Inscripción con descripción inline en un solo POST
	var regResp struct {
		ID            string `json:"id"`
		CatalogNumber int    `json:"catalog_number"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/api/shows/"+showID+"/registrations", "sec-1", "secretary", map[string]any{
			"dog_id":    dogID,
			"dog_class": "open",
			"description": map[string]any{
				"judge_id": judgeID,
				"grade":    "excellent",
				"content":  "Doskonały przedstawiciel rasy",
			},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 registration, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &regResp)
		if regResp.CatalogNumber != 1 {
			t.Fatalf("expected catalog number 1, got %d", regResp.CatalogNumber)
		}
	}

	// 6) El mismo perro no entra dos veces
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/shows/"+showID+"/registrations", "sec-1", "secretary", map[string]any{
			"dog_id":    dogID,
			"dog_class": "open",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate registration, got %d", st)
		}
	}

	// 7) El conteo derivado aparece en la show
	{
		st, body := doReq(t, ts.URL, "GET", "/api/shows/"+showID, "member-1", "member", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get show, got %d", st)
		}
		var sh struct {
			RegisteredDogs int `json:"registered_dogs"`
		}
		_ = json.Unmarshal(body, &sh)
		if sh.RegisteredDogs != 1 {
			t.Fatalf("expected 1 registered dog, got %d", sh.RegisteredDogs)
		}
	}

	// 8) La show cerrada rechaza inscripciones con 422
	for _, status := range []string{"in_progress", "completed"} {
		st, body := doReq(t, ts.URL, "PATCH", "/api/shows/"+showID+"/status", "org-1", "organizer", map[string]any{
			"status": status,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 transition to %s, got %d body=%s", status, st, string(body))
		}
	}
	{
		dog2 := createEntity(t, ts.URL, "member-1", "member", "/api/dogs", map[string]any{
			"name":       "Azor",
			"breed_id":   breedID,
			"gender":     "male",
			"birth_date": "2022-01-15",
			"microchip":  "616093900054321",
			"owners":     []map[string]any{{"owner_id": ownerID, "is_primary": true}},
		})
		st, body := doReq(t, ts.URL, "POST", "/api/shows/"+showID+"/registrations", "sec-1", "secretary", map[string]any{
			"dog_id":    dog2,
			"dog_class": "open",
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 registering into completed show, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Descriptions_AssignmentAndVersioning(t *testing.T) {
	ts := newTestServer(t)

	breedID := createEntity(t, ts.URL, "admin-1", "admin", "/api/breeds", map[string]any{
		"name_pl": "Chart polski", "name_en": "Polish Greyhound", "fci_group": 10, "fci_number": 333,
	})
	judgeID := createEntity(t, ts.URL, "admin-1", "admin", "/api/judges", map[string]any{
		"first_name": "Maria", "last_name": "Wiśniewska", "license_number": "PL-777", "fci_groups": []int{10},
	})
	ownerID := createEntity(t, ts.URL, "member-1", "member", "/api/owners", map[string]any{
		"first_name": "Piotr", "last_name": "Zieliński", "email": "piotr@example.com", "gdpr_consent": true,
	})
	dogID := createEntity(t, ts.URL, "member-1", "member", "/api/dogs", map[string]any{
		"name": "Luna", "breed_id": breedID, "gender": "female", "birth_date": "2024-02-10",
		"microchip": "616093900099999",
		"owners":    []map[string]any{{"owner_id": ownerID, "is_primary": true}},
	})
	showID := createEntity(t, ts.URL, "org-1", "organizer", "/api/shows", map[string]any{
		"name": "Wystawa Klubowa", "show_date": "2026-09-05",
	})
	doReq(t, ts.URL, "PATCH", "/api/shows/"+showID+"/status", "org-1", "organizer", map[string]any{"status": "open_for_registration"})
	doReq(t, ts.URL, "POST", "/api/shows/"+showID+"/assignments", "org-1", "organizer", map[string]any{
		"secretary_user_id": "sec-1", "breed_id": breedID,
	})

	payload := map[string]any{
		"show_id":   showID,
		"dog_id":    dogID,
		"judge_id":  judgeID,
		"dog_class": "junior",
		"grade":     "very_good",
		"content":   "Typowa, poprawna w ruchu",
	}

	// Secretario sin asignación => 403
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/descriptions", "sec-other", "secretary", payload)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for unassigned secretary, got %d", st)
		}
	}

	// Clase junior con nota corta => 400 antes de tocar el store
	{
		bad := map[string]any{}
		for k, v := range payload {
			bad[k] = v
		}
		delete(bad, "grade")
		bad["baby_puppy_grade"] = "promising"
		st, _ := doReq(t, ts.URL, "POST", "/api/descriptions", "sec-1", "secretary", bad)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for wrong grade scale, got %d", st)
		}
	}

	var descID string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/descriptions", "sec-1", "secretary", payload)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 description, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID      string `json:"id"`
			Version int    `json:"version"`
		}
		_ = json.Unmarshal(body, &resp)
		descID = resp.ID
		if resp.Version != 1 {
			t.Fatalf("expected version 1, got %d", resp.Version)
		}
	}

	// Duplicado (show, dog, judge) => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/descriptions", "sec-1", "secretary", payload)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate description, got %d", st)
		}
	}

	// Update archiva la versión anterior
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/descriptions/"+descID, "sec-1", "secretary", map[string]any{
			"grade": "excellent",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var resp struct {
			Version int `json:"version"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Version != 2 {
			t.Fatalf("expected version 2, got %d", resp.Version)
		}

		st, body = doReq(t, ts.URL, "GET", "/api/descriptions/"+descID+"/versions", "sec-1", "secretary", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 versions, got %d", st)
		}
		var revs []struct {
			Version int    `json:"version"`
			Grade   string `json:"grade"`
		}
		_ = json.Unmarshal(body, &revs)
		if len(revs) != 1 || revs[0].Version != 1 || revs[0].Grade != "very_good" {
			t.Fatalf("expected archived version 1 very_good, got %+v", revs)
		}
	}

	// Finalize es terminal; repetirlo => 422
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/api/descriptions/"+descID+"/finalize", "sec-1", "secretary", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 finalize, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "PATCH", "/api/descriptions/"+descID+"/finalize", "sec-1", "secretary", nil)
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 re-finalize, got %d", st)
		}
	}
}

func TestHTTP_ErrorEnvelope_And_Auth(t *testing.T) {
	ts := newTestServer(t)

	// Sin identidad => 401
	{
		req, _ := http.NewRequest("GET", ts.URL+"/api/breeds", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request error: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", resp.StatusCode)
		}
	}

	// Member no administra data de referencia => 403
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/breeds", "member-1", "member", map[string]any{
			"name_pl": "X", "name_en": "X", "fci_group": 1, "fci_number": 1,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for member, got %d", st)
		}
	}

	// gdpr_consent=false => 400 con el envelope uniforme
	{
		st, body := doReq(t, ts.URL, "POST", "/api/owners", "member-1", "member", map[string]any{
			"first_name": "Anna", "last_name": "Nowak", "email": "anna@example.com", "gdpr_consent": false,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", st, string(body))
		}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
			Timestamp string `json:"timestamp"`
			RequestID string `json:"request_id"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			t.Fatalf("envelope unmarshal: %v body=%s", err, string(body))
		}
		if envelope.Error.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %q", envelope.Error.Code)
		}
		if envelope.Timestamp == "" || envelope.RequestID == "" {
			t.Fatalf("expected timestamp and request_id, got %s", string(body))
		}
	}

	// Microchip de 14 dígitos => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/dogs", "member-1", "member", map[string]any{
			"name": "Burek", "breed_id": "b", "gender": "male", "birth_date": "2023-05-01",
			"microchip": "61609390001234",
			"owners":    []map[string]any{{"owner_id": "o", "is_primary": true}},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for 14-digit chip, got %d", st)
		}
	}
}

func TestHTTP_Breeds_Pagination(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 5; i++ {
		createEntity(t, ts.URL, "admin-1", "admin", "/api/breeds", map[string]any{
			"name_pl":    "Rasa " + string(rune('A'+i)),
			"name_en":    "Breed " + string(rune('A'+i)),
			"fci_group":  1,
			"fci_number": 100 + i,
		})
	}

	get := func(query string) (items []map[string]any, pagination map[string]any) {
		st, body := doReq(t, ts.URL, "GET", "/api/breeds"+query, "member-1", "member", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var resp struct {
			Data       []map[string]any `json:"data"`
			Pagination map[string]any   `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("list unmarshal: %v", err)
		}
		return resp.Data, resp.Pagination
	}

	p1, meta := get("?page=1&limit=2")
	p2, _ := get("?page=2&limit=2")

	if len(p1) != 2 || len(p2) != 2 {
		t.Fatalf("expected pages of 2, got %d and %d", len(p1), len(p2))
	}
	if meta["total"].(float64) != 5 || meta["pages"].(float64) != 3 {
		t.Fatalf("expected total=5 pages=3, got %+v", meta)
	}
	if p1[0]["id"] == p2[0]["id"] {
		t.Fatalf("expected disjoint pages")
	}
}

// -------------------------
// Helpers
// -------------------------

func createEntity(t *testing.T, baseURL, userID, role, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, role, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, userID, role string, payload map[string]any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Debug-User-ID", userID)
	req.Header.Set("X-Debug-Role", role)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}
