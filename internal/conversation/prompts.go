package conversation

import (
	"fmt"
	"strings"

	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/pricing"
)

// Flow tokens carried by inline buttons.
const (
	TokenRequest        = "solicitar"
	TokenPrices         = "precios"
	TokenContact        = "contacto"
	TokenServiceNormal  = "svc_normal"
	TokenServiceExpress = "svc_express"
	TokenExpressYes     = "express_yes"
	TokenExpressNo      = "express_no"
	TokenConfirmYes     = "confirm_yes"
	TokenConfirmNo      = "confirm_no"
)

// CancelEntry is the last row of the zone menu.
const CancelEntry = "❌ Cancelar"

const (
	commandStart  = "/start"
	commandCancel = "/cancel"
)

const (
	textWelcome = "¡Bienvenido a Brisa Habanera! 🌬️\n\n" +
		"Tu ropa limpia y fresca sin complicaciones. Selecciona una opción para comenzar."
	textContact = "📞 Información de contacto:\n\n" +
		"📍 Dirección: La Habana, Cuba\n" +
		"📧 Email: contacto@brisahabanera.com\n" +
		"📱 Teléfono: +53 555-0000\n\n" +
		"Estamos para servirte. 🌬️"
)

const (
	textMenuHint       = "Selecciona una opción del menú para continuar."
	textAnythingElse   = "¿Deseas realizar algo más?"
	textCancelled      = "Operación cancelada. Si necesitas ayuda, escribe /start."
	textDiscarded      = "Pedido en curso descartado."
	textStale          = "Esta opción ya no está disponible."
	textZonePrompt     = "📍 ¿En qué zona recogemos tu ropa? Elige una opción del menú."
	textServicePrompt  = "Selecciona el tipo de servicio que deseas:"
	textQuantityPrompt = "Indica la cantidad aproximada de prendas (ej: 5, 10, una bolsa):"
	textNamePrompt     = "Perfecto. Ahora, por favor, escribe tu nombre completo:"
	textAddressPrompt  = "Por último, escribe tu dirección completa:\n(Calle, número, apto, barrio y referencia cercana)"
	textAddressRetry   = "Sin problema. Escribe nuevamente tu dirección completa:"
	textExpressDropped = "Servicio exprés descartado. Volvamos a elegir la zona."
	textRegistering    = "⏳ Registrando tu pedido..."
	textCommitFailed   = "⚠️ No pudimos registrar tu pedido. Pulsa «Confirmar» para intentarlo de nuevo."
)

// MainMenu is the inline menu shown to idle customers.
func MainMenu() *model.Keyboard {
	return &model.Keyboard{Inline: [][]model.Button{
		{{Text: "🧺 Solicitar servicio", Token: TokenRequest}},
		{{Text: "📋 Ver precios", Token: TokenPrices}},
		{{Text: "📞 Contacto", Token: TokenContact}},
	}}
}

// ZoneMenu renders zone names two per row followed by the cancel entry.
func ZoneMenu(table *pricing.Table) *model.Keyboard {
	names := table.Names()
	rows := make([][]string, 0, len(names)/2+2)
	for i := 0; i < len(names); i += 2 {
		end := i + 2
		if end > len(names) {
			end = len(names)
		}
		rows = append(rows, append([]string(nil), names[i:end]...))
	}
	rows = append(rows, []string{CancelEntry})
	return &model.Keyboard{Reply: rows}
}

func serviceMenu() *model.Keyboard {
	return &model.Keyboard{Inline: [][]model.Button{
		{{Text: "Lavado y secado", Token: TokenServiceNormal}},
		{{Text: "Servicio exprés ⚡", Token: TokenServiceExpress}},
	}}
}

func expressMenu() *model.Keyboard {
	return &model.Keyboard{Inline: [][]model.Button{{
		{Text: "✅ Sí, exprés", Token: TokenExpressYes},
		{Text: "↩️ No", Token: TokenExpressNo},
	}}}
}

func confirmMenu() *model.Keyboard {
	return &model.Keyboard{Inline: [][]model.Button{{
		{Text: "✅ Confirmar", Token: TokenConfirmYes},
		{Text: "✏️ Corregir dirección", Token: TokenConfirmNo},
	}}}
}

func removeReply() *model.Keyboard {
	return &model.Keyboard{RemoveReply: true}
}

// PriceList renders the zone table with normal and express prices.
func PriceList(table *pricing.Table) string {
	var b strings.Builder
	b.WriteString("📋 Lista de precios por zona:\n\n")
	for _, z := range table.Zones() {
		fmt.Fprintf(&b, "• %s: %s (exprés %s)\n", z.Zone, pricing.Format(z.BasePrice), pricing.Format(pricing.ExpressPrice(z.BasePrice)))
	}
	b.WriteString("\nEl servicio exprés tiene un recargo del 50%.\n¿Te gustaría solicitar un servicio?")
	return b.String()
}

func zoneSelectedText(z model.ZonePrice) string {
	return fmt.Sprintf("📍 Zona seleccionada: %s", z.Zone)
}

func unknownZoneText(input string) string {
	if input == "" {
		return "⚠️ Elige una zona del menú para continuar.\n\n" + textZonePrompt
	}
	return fmt.Sprintf("⚠️ La zona «%s» no está en nuestra lista.\n\n%s", input, textZonePrompt)
}

func expressConfirmText(base int64) string {
	return fmt.Sprintf("⚡ El servicio exprés tiene un recargo del 50%%: pagarías %s en lugar de %s.\n\n¿Confirmas el servicio exprés?",
		pricing.Format(pricing.ExpressPrice(base)), pricing.Format(base))
}

func serviceChosenText(d *model.DraftOrder) string {
	return fmt.Sprintf("✅ Servicio seleccionado: %s\n💰 Precio: %s\n\n%s",
		d.ServiceType.Label(), pricing.Format(d.ComputedPrice), textQuantityPrompt)
}

func phonePrompt(name string) string {
	return fmt.Sprintf("Gracias, %s. 📝\n\nProporciona tu número de teléfono (con código de país si es posible):", name)
}

func summaryText(d *model.DraftOrder) string {
	return fmt.Sprintf("🧾 Revisa tu pedido:\n\n"+
		"📍 Zona: %s\n"+
		"🧼 Servicio: %s\n"+
		"🧺 Cantidad: %s\n"+
		"👤 Cliente: %s\n"+
		"📱 Teléfono: %s\n"+
		"🏠 Dirección: %s\n"+
		"💰 Precio: %s\n\n"+
		"¿Confirmamos el pedido?",
		d.Zone, d.ServiceType.Label(), d.QuantityDescription, d.CustomerName, d.CustomerPhone, d.CustomerAddress,
		pricing.Format(d.ComputedPrice))
}

func invalidText(prompt string) string {
	return "⚠️ No entendí tu respuesta.\n\n" + prompt
}
