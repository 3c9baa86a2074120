package domain

import "github.com/shopspring/decimal"

// CartItem — строка корзины посетителя.
type CartItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	VariantID string   `json:"variant_id,omitempty"`
	Quantity  int      `json:"quantity"`
	Price     Money    `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// Cart — содержимое корзины. Хранится в сессии, конфликтов не разрешает (last-write-wins).
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) find(productID, variantID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

// Add добавляет товар; строка с тем же товаром и вариантом увеличивает количество.
func (c *Cart) Add(item CartItem) {
	if i := c.find(item.ProductID, item.VariantID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// Remove удаляет все строки товара. Возвращает false, если их не было.
func (c *Cart) Remove(productID string) bool {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(c.Items)
	c.Items = kept
	return removed
}

// SetQuantity меняет количество во всех строках товара; quantity <= 0 удаляет их.
// Возвращает false, если товара в корзине нет.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			found = true
		}
	}
	return found
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Total — сумма price*quantity по всем строкам.
func (c *Cart) Total() Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount — суммарное количество единиц товара.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return c.ItemCount() == 0
}
