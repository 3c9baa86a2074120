package domain

type DashboardStats struct {
	TotalRevenue     Money         `json:"total_revenue"`
	TodayRevenue     Money         `json:"today_revenue"`
	TotalOrders      int           `json:"total_orders"`
	TodayOrders      int           `json:"today_orders"`
	PendingOrders    int           `json:"pending_orders"`
	TotalProducts    int           `json:"total_products"`
	LowStockProducts int           `json:"low_stock_products"`
	TotalCustomers   int           `json:"total_customers"`
	RecentOrders     []Order       `json:"recent_orders"`
	TopProducts      []ProductStat `json:"top_products"`
	SalesChart       []ChartData   `json:"sales_chart"`
}

type ProductStat struct {
	Product   Product `json:"product"`
	TotalSold int     `json:"total_sold"`
	Revenue   Money   `json:"revenue"`
}

type ChartData struct {
	Date    string `json:"date"`
	Revenue Money  `json:"revenue"`
	Orders  int    `json:"orders"`
}
