// File: services/assistant/schemas.go
package assistant

import (
	ai "lengolf/services/intelligence"
)

// toolSchemas is the fixed action-schema set sent with every completion call.
// Every declared parameter is marked required; a field that does not apply is
// passed as an empty string or zero, never omitted.
func toolSchemas() []ai.ToolSchema {
	dateParam := ai.ToolParam{Type: "string", Description: "Date in YYYY-MM-DD format"}
	timeParam := ai.ToolParam{Type: "string", Description: "Start time in HH:MM 24h format"}
	durationParam := ai.ToolParam{Type: "number", Description: "Duration in hours, 0.5 to 3.0 in half-hour steps"}
	classParam := ai.ToolParam{
		Type:        "string",
		Description: "Resource class: bay (standard simulator bay, up to 5 players), sim (analytics bay, up to 2 players), coach (golf coach)",
		Enum:        []string{"bay", "sim", "coach"},
	}

	schemas := []ai.ToolSchema{
		{
			Name:        "check_availability",
			Description: "Check which bays, sims or coaches are free. Give start_time for a specific slot, or an empty string for a whole-day summary.",
			Params: map[string]ai.ToolParam{
				"date":           dateParam,
				"start_time":     {Type: "string", Description: "Start time in HH:MM 24h format, or empty string for a whole-day summary"},
				"duration":       durationParam,
				"resource_class": classParam,
			},
		},
		{
			Name:        "create_booking",
			Description: "Propose a new booking. The booking is not committed until staff approve it.",
			Params: map[string]ai.ToolParam{
				"date":           dateParam,
				"start_time":     timeParam,
				"duration":       durationParam,
				"resource_class": classParam,
				"occupants":      {Type: "integer", Description: "Number of players, 0 if not stated"},
				"customer_id":    {Type: "string", Description: "Known customer id, or empty string"},
				"customer_name":  {Type: "string", Description: "Customer full name"},
				"phone":          {Type: "string", Description: "Customer phone number"},
				"coach_name":     {Type: "string", Description: "Coach name for a coaching session, or empty string"},
				"notes":          {Type: "string", Description: "Free-form notes for staff, or empty string"},
			},
		},
		{
			Name:        "modify_booking",
			Description: "Propose changes to an existing booking. Requires staff approval. Pass an empty string or 0 for fields that keep their current value.",
			Params: map[string]ai.ToolParam{
				"booking_id": {Type: "string", Description: "The booking to change"},
				"date":       {Type: "string", Description: "New date in YYYY-MM-DD format, or empty string to keep"},
				"start_time": {Type: "string", Description: "New start time in HH:MM 24h format, or empty string to keep"},
				"duration":   {Type: "number", Description: "New duration in hours, or 0 to keep"},
				"notes":      {Type: "string", Description: "Updated notes, or empty string to keep"},
			},
		},
		{
			Name:        "cancel_booking",
			Description: "Propose cancelling an existing booking. Requires staff approval.",
			Params: map[string]ai.ToolParam{
				"booking_id": {Type: "string", Description: "The booking to cancel"},
				"reason":     {Type: "string", Description: "Reason given by the customer, or empty string"},
			},
		},
		{
			Name:        "lookup_booking",
			Description: "Look up a booking by id, or list a customer's bookings on a date. Give either booking_id or customer_id.",
			Params: map[string]ai.ToolParam{
				"booking_id":  {Type: "string", Description: "Booking id, or empty string when listing by customer"},
				"customer_id": {Type: "string", Description: "Customer id, or empty string when looking up by booking id"},
				"date":        {Type: "string", Description: "Date in YYYY-MM-DD format, or empty string for all dates"},
			},
		},
		{
			Name:        "lookup_customer",
			Description: "Look up a customer by phone number or name. Give at least one.",
			Params: map[string]ai.ToolParam{
				"phone": {Type: "string", Description: "Phone number, or empty string"},
				"name":  {Type: "string", Description: "Full or partial name, or empty string"},
			},
		},
	}

	for i := range schemas {
		for key := range schemas[i].Params {
			schemas[i].Required = append(schemas[i].Required, key)
		}
	}
	return schemas
}
