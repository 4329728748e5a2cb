package app

import (
	"fmt"
	"strings"

	"github.com/polkiloo/brisa/internal/domain/model"
)

const adminTokenPrefix = "adm_"

const dateLayout = "02/01/2006 15:04"

// AdminToken encodes a lifecycle button as adm_<ticketId>_<action>.
func AdminToken(ticketID string, action model.Action) string {
	return adminTokenPrefix + ticketID + "_" + string(action)
}

// ParseAdminToken splits an admin button token. The action is not validated here.
func ParseAdminToken(token string) (string, model.Action, bool) {
	rest, ok := strings.CutPrefix(token, adminTokenPrefix)
	if !ok {
		return "", "", false
	}
	i := strings.LastIndex(rest, "_")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	return rest[:i], model.Action(rest[i+1:]), true
}

// IsAdminToken reports whether a button belongs to the lifecycle menu.
func IsAdminToken(token string) bool {
	return strings.HasPrefix(token, adminTokenPrefix)
}

var actionLabels = map[model.Action]string{
	model.ActionReceive:       "📦 Recibido en lavandería",
	model.ActionMarkReady:     "✨ Listo para entrega",
	model.ActionMarkDelivered: "✅ Entregado",
}

// ActionMenu is the inline lifecycle menu attached to admin cards.
func ActionMenu(ticketID string) *model.Keyboard {
	rows := make([][]model.Button, 0, len(model.Actions))
	for _, a := range model.Actions {
		rows = append(rows, []model.Button{{Text: actionLabels[a], Token: AdminToken(ticketID, a)}})
	}
	return &model.Keyboard{Inline: rows}
}

// ReceiptText is the ticket confirmation kept in the customer chat.
func ReceiptText(t *model.Ticket) string {
	return fmt.Sprintf("🧾 Boleto de servicio - Brisa Habanera\n\n"+
		"🔖 Código: %s\n"+
		"👤 Cliente: %s\n"+
		"📱 Teléfono: %s\n"+
		"📍 Dirección: %s (%s)\n"+
		"🧼 Servicio: %s\n"+
		"🧺 Cantidad: %s\n"+
		"💰 Precio: %s\n"+
		"📅 Fecha: %s\n"+
		"🔄 Estado: %s\n\n"+
		"¡Gracias %s! Tu pedido ha sido registrado. Nuestro equipo pasará a recoger tu ropa "+
		"según disponibilidad. Te contactaremos al número proporcionado.",
		t.ID, t.CustomerName, t.Phone, t.Address, t.Zone, t.ServiceType.Label(),
		t.QuantityDescription, t.FormattedPrice, t.CreatedAt.Format(dateLayout), t.Status.Label(),
		t.CustomerName)
}

// AdminCard renders current ticket state for the administrator.
func AdminCard(t *model.Ticket) string {
	return fmt.Sprintf("🧾 Pedido %s\n\n"+
		"👤 %s · 📱 %s\n"+
		"📍 %s, %s\n"+
		"🧼 %s · 🧺 %s\n"+
		"💰 %s\n"+
		"📅 Creado: %s\n"+
		"🔄 Estado: %s\n"+
		"🕒 Actualizado: %s",
		t.ID, t.CustomerName, t.Phone, t.Address, t.Zone, t.ServiceType.Label(),
		t.QuantityDescription, t.FormattedPrice, t.CreatedAt.Format(dateLayout),
		t.Status.Label(), t.UpdatedAt.Format(dateLayout))
}
