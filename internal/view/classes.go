package view

// Class lists toggled by scroll state. The server render and the browser
// binding both use these so the two never disagree.
const (
	navScrolledClass = "bg-background/90 backdrop-blur-md shadow-md py-3"
	navTopClass      = "bg-transparent py-5"
	navActiveClass   = "text-primary font-medium"
	backToTopShown   = "opacity-100 scale-100"
	backToTopHidden  = "opacity-0 scale-0"
)

// NavClass returns the navigation bar's state classes.
func NavClass(scrolled bool) string {
	if scrolled {
		return navScrolledClass
	}
	return navTopClass
}

// NavItemClass returns the classes of a navigation entry.
func NavItemClass(active bool) string {
	if active {
		return navActiveClass
	}
	return ""
}

// BackToTopClass returns the back-to-top control's visibility classes.
func BackToTopClass(visible bool) string {
	if visible {
		return backToTopShown
	}
	return backToTopHidden
}

// StateClasses lists every class NavClass, NavItemClass and BackToTopClass
// may emit, so a binding can strip stale ones before applying new ones.
func StateClasses() []string {
	return []string{
		"bg-background/90", "backdrop-blur-md", "shadow-md", "py-3",
		"bg-transparent", "py-5",
		"text-primary", "font-medium",
		"opacity-100", "scale-100", "opacity-0", "scale-0",
	}
}
