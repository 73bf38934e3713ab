package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"medtrack/internal/modules/medicine/domain"
	medout "medtrack/internal/modules/medicine/port/out"
	"medtrack/internal/platform/rest"
)

type HTTPMedicineAPI struct {
	client *rest.Client
}

func NewHTTPMedicineAPI(client *rest.Client) medout.MedicineAPI {
	return &HTTPMedicineAPI{client: client}
}

type medicineWire struct {
	ID           int                 `json:"id"`
	Name         string              `json:"name"`
	GenericName  string              `json:"genericName,omitempty"`
	Manufacturer string              `json:"manufacturer,omitempty"`
	Active       bool                `json:"active"`
	OpenFDA      map[string][]string `json:"openfda,omitempty"`
}

type pageWire struct {
	Content       []medicineWire `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

type importResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

func (a *HTTPMedicineAPI) List(ctx context.Context, token string) ([]domain.Medicine, error) {
	var wires []medicineWire
	err := a.client.Do(ctx, rest.Request{Method: http.MethodGet, Path: "/medicine", Token: token}, &wires)
	if err != nil {
		return nil, err
	}
	medicines := make([]domain.Medicine, len(wires))
	for i, w := range wires {
		medicines[i] = fromWire(w)
	}
	return medicines, nil
}

func (a *HTTPMedicineAPI) Paged(ctx context.Context, token string, page, size int, query string) (domain.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if query != "" {
		q.Set("q", query)
	}
	var wire pageWire
	err := a.client.Do(ctx, rest.Request{Method: http.MethodGet, Path: "/medicine/paged", Query: q, Token: token}, &wire)
	if err != nil {
		return domain.Page{}, err
	}
	content := make([]domain.Medicine, len(wire.Content))
	for i, w := range wire.Content {
		content[i] = fromWire(w)
	}
	return domain.Page{
		Content:       content,
		Page:          wire.Page,
		Size:          wire.Size,
		TotalElements: wire.TotalElements,
		TotalPages:    wire.TotalPages,
	}, nil
}

func (a *HTTPMedicineAPI) Get(ctx context.Context, token string, id int) (domain.Medicine, error) {
	var wire medicineWire
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/medicine/%d", id),
		Token:  token,
	}, &wire)
	if err != nil {
		return domain.Medicine{}, err
	}
	return fromWire(wire), nil
}

func (a *HTTPMedicineAPI) Delete(ctx context.Context, token string, id int) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/medicine/%d", id),
		Token:  token,
	}, nil)
}

func (a *HTTPMedicineAPI) Import(ctx context.Context, token string, payload []byte) (medout.ImportResult, error) {
	var resp importResponse
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/medicine/import",
		Token:  token,
		Body:   json.RawMessage(payload),
	}, &resp)
	if err != nil {
		return medout.ImportResult{}, err
	}
	return medout.ImportResult{Message: resp.Message, Imported: resp.Imported}, nil
}

func fromWire(w medicineWire) domain.Medicine {
	return domain.Medicine{
		ID:           w.ID,
		Name:         w.Name,
		GenericName:  w.GenericName,
		Manufacturer: w.Manufacturer,
		Active:       w.Active,
		OpenFDA:      w.OpenFDA,
	}
}
