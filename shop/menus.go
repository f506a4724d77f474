package shop

import "github.com/dasdy/pizzastore/menu"

const (
	MainExitKey = 9
	UserExitKey = 20
)

// MainMenu is shown before login.
func (a *App) MainMenu() menu.Menu {
	return menu.Menu{
		Title: "MAIN MENU",
		Choices: []menu.Choice{
			{Key: 1, Label: "Create user", Handler: a.handle(a.CreateUser)},
			{Key: 2, Label: "Log in", Handler: a.handle(a.LogIn)},
			{Key: MainExitKey, Label: "< EXIT"},
		},
		ExitKey: MainExitKey,
	}
}

// UserMenu is shown while logged in. Choices 9 to 11 check the role themselves.
func (a *App) UserMenu() menu.Menu {
	return menu.Menu{
		Title: "USER MENU",
		Choices: []menu.Choice{
			{Key: 1, Label: "View Profile", Handler: a.handle(a.ViewProfile)},
			{Key: 2, Label: "Update Profile", Handler: a.handle(a.UpdateProfile)},
			{Key: 3, Label: "View Menu", Handler: a.handle(a.ViewMenu)},
			{Key: 4, Label: "Place Order", Handler: a.handle(a.PlaceOrder)},
			{Key: 5, Label: "View Full Order ID History", Handler: a.handle(a.ViewAllOrders)},
			{Key: 6, Label: "View Past 5 Order IDs", Handler: a.handle(a.ViewRecentOrders)},
			{Key: 7, Label: "View Order Information", Handler: a.handle(a.ViewOrderInfo)},
			{Key: 8, Label: "View Stores", Handler: a.handle(a.ViewStores)},
			{Key: 9, Label: "Update Order Status", Handler: a.handle(a.UpdateOrderStatus)},
			{Key: 10, Label: "Update Menu", Handler: a.handle(a.UpdateMenu)},
			{Key: 11, Label: "Update User", Handler: a.handle(a.UpdateUser)},
			{Key: UserExitKey, Label: "Log out"},
		},
		ExitKey: UserExitKey,
	}
}
