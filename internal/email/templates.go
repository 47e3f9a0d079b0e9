package email

import "fmt"

// BuildPendingOrderReminderBody builds the plain-text body for a pending
// order reminder email.
func BuildPendingOrderReminderBody(customerName, orderID string, total float64) string {
	return fmt.Sprintf(`Dear %s,

You have a pending order (order number: %s) with a total of $%.2f.

Please complete the checkout process, or contact us if you no longer wish
to receive this order.

Best regards,
The Bookstore Team
`, customerName, orderID, total)
}
