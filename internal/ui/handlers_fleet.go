package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"tiretrack/internal/domain"
)

func (h *Handler) VehiclesList(w http.ResponseWriter, r *http.Request) {
	ident := identity(r)
	page := pageFromRequest(r, 25)

	vehicles, total, err := h.Fleet.ListVehicles(r.Context(), page)
	if err != nil {
		renderError(w, err)
		return
	}

	body := []Node{vehicleCreateCard(csrfField(r))}
	if len(vehicles) == 0 {
		body = append(body, emptyStateCard("No vehicles registered yet."))
	} else {
		rows := make([]Node, 0, len(vehicles))
		for _, v := range vehicles {
			rows = append(rows, Tr(
				Td(Strong(Text(v.Name))),
				Td(Text(v.Plate)),
				Td(Text(fmt.Sprintf("%d", v.AxleCount))),
				Td(Text(formatTime(v.CreatedAt))),
				Td(Class("text-right"), dangerButton("/ui/vehicles/"+v.ID+"/delete", "Delete", csrfField(r))),
			))
		}
		body = append(body, Div(
			Class(cardClass()),
			Table(
				Class("width-full"),
				THead(Tr(Th(Text("Name")), Th(Text("Plate")), Th(Text("Axles")), Th(Text("Created")), Th())),
				TBody(Group(rows)),
			),
		), paginationCard("/ui/vehicles", page, total))
	}

	renderHTML(w, http.StatusOK, h.appPage("Vehicles", domain.DestVehicles, ident, body...))
}

func (h *Handler) VehicleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, domain.ErrValidation("invalid form"))
		return
	}
	axles, _ := strconv.ParseInt(r.Form.Get("axle_count"), 10, 64)
	_, err := h.Fleet.CreateVehicle(r.Context(), &domain.CreateVehicleRequest{
		Name:      strings.TrimSpace(r.Form.Get("name")),
		Plate:     strings.TrimSpace(r.Form.Get("plate")),
		AxleCount: axles,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/vehicles", http.StatusSeeOther)
}

func (h *Handler) VehicleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Fleet.DeleteVehicle(r.Context(), chi.URLParam(r, "vehicleID")); err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/vehicles", http.StatusSeeOther)
}

func (h *Handler) TiresList(w http.ResponseWriter, r *http.Request) {
	ident := identity(r)
	page := pageFromRequest(r, 25)

	tires, total, err := h.Fleet.ListTireModels(r.Context(), page)
	if err != nil {
		renderError(w, err)
		return
	}

	body := []Node{tireCreateCard(csrfField(r))}
	if len(tires) == 0 {
		body = append(body, emptyStateCard("No tire models registered yet."))
	} else {
		rows := make([]Node, 0, len(tires))
		for _, t := range tires {
			rows = append(rows, Tr(
				Td(Strong(Text(t.Brand))),
				Td(Text(t.Model)),
				Td(Text(t.Dimension)),
				Td(Text(formatTime(t.CreatedAt))),
				Td(Class("text-right"), dangerButton("/ui/tires/"+t.ID+"/delete", "Delete", csrfField(r))),
			))
		}
		body = append(body, Div(
			Class(cardClass()),
			Table(
				Class("width-full"),
				THead(Tr(Th(Text("Brand")), Th(Text("Model")), Th(Text("Dimension")), Th(Text("Created")), Th())),
				TBody(Group(rows)),
			),
		), paginationCard("/ui/tires", page, total))
	}

	renderHTML(w, http.StatusOK, h.appPage("Tire Models", domain.DestTires, ident, body...))
}

func (h *Handler) TireCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, domain.ErrValidation("invalid form"))
		return
	}
	_, err := h.Fleet.CreateTireModel(r.Context(), &domain.CreateTireModelRequest{
		Brand:     strings.TrimSpace(r.Form.Get("brand")),
		Model:     strings.TrimSpace(r.Form.Get("model")),
		Dimension: strings.TrimSpace(r.Form.Get("dimension")),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/tires", http.StatusSeeOther)
}

func (h *Handler) TireDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Fleet.DeleteTireModel(r.Context(), chi.URLParam(r, "tireID")); err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/tires", http.StatusSeeOther)
}

func (h *Handler) InventoryList(w http.ResponseWriter, r *http.Request) {
	ident := identity(r)

	lines, err := h.Fleet.ListStock(r.Context())
	if err != nil {
		renderError(w, err)
		return
	}
	tires, _, err := h.Fleet.ListTireModels(r.Context(), domain.PageRequest{MaxResults: 200})
	if err != nil {
		renderError(w, err)
		return
	}

	body := []Node{stockSetCard(tires, csrfField(r))}
	if len(lines) == 0 {
		body = append(body, emptyStateCard("No inventory lines yet. Set stock for a tire model above."))
	} else {
		rows := make([]Node, 0, len(lines))
		for _, line := range lines {
			status := statusLabel("ok", "success")
			if line.Low() {
				status = statusLabel("low", "danger")
			}
			rows = append(rows, Tr(
				Td(Strong(Text(line.TireLabel))),
				Td(Text(fmt.Sprintf("%d", line.Quantity))),
				Td(Text(fmt.Sprintf("%d", line.MinQuantity))),
				Td(status),
				Td(Text(formatTime(line.UpdatedAt))),
			))
		}
		body = append(body, Div(
			Class(cardClass()),
			Table(
				Class("width-full"),
				THead(Tr(Th(Text("Tire")), Th(Text("Quantity")), Th(Text("Minimum")), Th(Text("Status")), Th(Text("Updated")))),
				TBody(Group(rows)),
			),
		))
	}

	renderHTML(w, http.StatusOK, h.appPage("Inventory", domain.DestInventory, ident, body...))
}

func (h *Handler) StockSet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, domain.ErrValidation("invalid form"))
		return
	}
	quantity, _ := strconv.ParseInt(r.Form.Get("quantity"), 10, 64)
	minQuantity, _ := strconv.ParseInt(r.Form.Get("min_quantity"), 10, 64)
	_, err := h.Fleet.SetStock(r.Context(), &domain.SetStockRequest{
		TireModelID: r.Form.Get("tire_model_id"),
		Quantity:    quantity,
		MinQuantity: minQuantity,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/inventory", http.StatusSeeOther)
}

func vehicleCreateCard(csrf Node) Node {
	return Div(
		Class(cardClass()),
		H2(Class("f4 mb-2"), Text("Register vehicle")),
		Form(
			Method("post"),
			Action("/ui/vehicles"),
			Class("d-flex flex-wrap gap-2 flex-items-end"),
			csrf,
			formField("Name", Input(Type("text"), Name("name"), Class("form-control"), Required())),
			formField("Plate", Input(Type("text"), Name("plate"), Class("form-control"), Required())),
			formField("Axles", Input(Type("number"), Name("axle_count"), Class("form-control"), Value("2"), Min("2"), Required())),
			Button(Type("submit"), Class("btn btn-primary"), Text("Register")),
		),
	)
}

func tireCreateCard(csrf Node) Node {
	return Div(
		Class(cardClass()),
		H2(Class("f4 mb-2"), Text("Register tire model")),
		Form(
			Method("post"),
			Action("/ui/tires"),
			Class("d-flex flex-wrap gap-2 flex-items-end"),
			csrf,
			formField("Brand", Input(Type("text"), Name("brand"), Class("form-control"), Required())),
			formField("Model", Input(Type("text"), Name("model"), Class("form-control"), Required())),
			formField("Dimension", Input(Type("text"), Name("dimension"), Class("form-control"), Placeholder("295/80R22.5"), Required())),
			Button(Type("submit"), Class("btn btn-primary"), Text("Register")),
		),
	)
}

func stockSetCard(tires []domain.TireModel, csrf Node) Node {
	options := make([]Node, 0, len(tires))
	for _, t := range tires {
		options = append(options, Option(Value(t.ID), Text(t.Brand+" "+t.Model+" "+t.Dimension)))
	}
	return Div(
		Class(cardClass()),
		H2(Class("f4 mb-2"), Text("Set stock")),
		Form(
			Method("post"),
			Action("/ui/inventory"),
			Class("d-flex flex-wrap gap-2 flex-items-end"),
			csrf,
			formField("Tire model", Select(Name("tire_model_id"), Class("form-select"), Group(options))),
			formField("Quantity", Input(Type("number"), Name("quantity"), Class("form-control"), Value("0"), Min("0"), Required())),
			formField("Minimum", Input(Type("number"), Name("min_quantity"), Class("form-control"), Value("0"), Min("0"), Required())),
			Button(Type("submit"), Class("btn btn-primary"), Text("Save")),
		),
	)
}
