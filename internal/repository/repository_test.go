package repository

import (
	"time"

	"botdash/internal/entities"
)

var t0 = time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

func groceryDataset() Dataset {
	tenant := entities.Tenant{ID: "t1", Name: "Corner Shop", Slug: "corner-shop", Kind: entities.TenantGrocery, Phone: "+2348000000001", Timezone: "Africa/Lagos"}
	o1, _ := entities.NewOrder("ORD-1", "t1", "Ada", "+2348011111111", []entities.OrderItem{{Product: "Rice", Quantity: 2, Price: 500}}, t0)
	o2, _ := entities.NewOrder("ORD-2", "t1", "Bola", "+2348022222222", []entities.OrderItem{{Product: "Oil", Quantity: 1, Price: 900}, {Product: "Salt", Quantity: 3, Price: 100}}, t0.Add(time.Hour))
	return Dataset{
		Tenant:   tenant,
		Users:    []entities.User{{ID: "u1", TenantID: "t1", Email: "owner@corner.ng", Role: entities.RoleOwner, Name: "Owner"}},
		Settings: entities.Settings{BusinessName: "Corner Shop", Phone: "+2348000000001", Email: "hi@corner.ng"},
		Conversations: []entities.Conversation{
			{ID: "c1", TenantID: "t1", CustomerName: "Ada", CustomerPhone: "+2348011111111", Status: entities.ConversationCompleted, StartedAt: t0, LastMessageAt: t0.Add(10 * time.Minute)},
			{ID: "c2", TenantID: "t1", CustomerName: "Bola", CustomerPhone: "+2348022222222", Status: entities.ConversationActive, StartedAt: t0, LastMessageAt: t0.Add(time.Hour)},
		},
		Messages: []entities.Message{
			{ID: "m1", ConversationID: "c1", Sender: entities.SenderCustomer, Text: "Hi", Timestamp: t0},
			{ID: "m2", ConversationID: "c1", Sender: entities.SenderBot, Text: "Hello!", Timestamp: t0.Add(time.Second)},
		},
		Orders: []entities.Order{*o1, *o2},
	}
}

func propertyDataset() Dataset {
	return Dataset{
		Tenant:   entities.Tenant{ID: "t2", Name: "Shortlets", Slug: "shortlets", Kind: entities.TenantProperty, Phone: "+2348000000002"},
		Settings: entities.Settings{BusinessName: "Shortlets", Phone: "+2348000000002", Email: "hi@shortlets.ng"},
		Conversations: []entities.Conversation{
			{ID: "p1", TenantID: "t2", CustomerName: "Kemi", CustomerPhone: "+2348033333333", Status: entities.ConversationViewingBooked, StartedAt: t0, LastMessageAt: t0.Add(time.Minute)},
		},
		Viewings: []entities.Viewing{{
			ID: "VW-1", TenantID: "t2", GuestName: "Kemi", GuestPhone: "+2348033333333",
			PropertyID: "prop-1", PropertyName: "Studio", ViewingDate: "2024-01-18", ViewingTime: "14:00",
			Status: entities.ViewingScheduled, Source: entities.SourceWhatsApp, CreatedAt: t0, UpdatedAt: t0,
		}},
	}
}
