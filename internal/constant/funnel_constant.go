package constant

// Action tokens the transport sends back when the user presses a button.
const (
	ActionSkip          = "skip"
	ActionCancel        = "cancel"
	ActionSelectBase    = "filter_by_base_category"
	ActionListTargets   = "targets_list"
	ActionSelectTarget  = "select_target"
	ActionAddProduct    = "add_product"
	ActionRemoveProduct = "remove_product"
	ActionProductLink   = "send_product_link"
	ActionShowMore      = "show_more_products"
	ActionOpenFilters   = "return_to_filters"
	ActionOpenCheckout  = "open_checkout"
	ActionEditProducts  = "edit_products"
	ActionConfirmOrder  = "create_table"
)

// BrowsePageSize is how many product cards one browse page carries.
const BrowsePageSize = 5

// Message keys for funnel prompts. Values are the EN defaults; translation
// into the session language is the transport's concern.
const (
	MsgSelectLanguage    = "language_message"
	MsgSelectEnvironment = "environment_message"
	MsgSelectFilter      = "filters_message"
	MsgSelectTarget      = "target_message"
	MsgContinueSelecting = "continue_products_selecting_message"
	MsgEnterVolume       = "storage_volume_message"
	MsgCheckout          = "checkout_message"
	MsgSelectOS          = "os_message"
	MsgEnterStartDate    = "start_cycle_date_message"
	MsgEnterEmail        = "email_message"
	MsgStop              = "stop_message"
	MsgTableAlmostReady  = "wait_for_table_message"

	MsgIosCalendarInstructions = "ios_calendar_instructions_message"
	MsgCalendarInstructions    = "calendar_instructions_message"

	MsgNothingFound       = "no_searched_products_message"
	MsgNoUserProducts     = "no_user_products_message"
	MsgNoProductLink      = "no_product_link_message"
	MsgIncorrectVolume    = "incorrect_storage_volume_message"
	MsgIncorrectStartDate = "incorrect_start_cycle_date_message"
	MsgRestartFilters     = "restart_filters_message"
	MsgProductAdded       = "product_added_message"
	MsgProductRemoved     = "product_removed_message"
	MsgUnknownInput       = "unknown_input_message"
)

var MessageTexts = map[string]string{
	MsgSelectLanguage:    "Select a language",
	MsgSelectEnvironment: "Select a growing environment or skip this step",
	MsgSelectFilter:      "Enter a brand name or continue selecting",
	MsgSelectTarget:      "Select a category or send brand/product name",
	MsgContinueSelecting: "Continue selecting",
	MsgEnterVolume:       "Enter your reservoir volume in liters",
	MsgCheckout:          "Selected products",
	MsgSelectOS:          "Select your OS",
	MsgEnterStartDate:    "Enter start growing cycle date (format: yyyy-mm-dd)",
	MsgEnterEmail:        "Enter your email",
	MsgStop:              "Was glad to help you",
	MsgTableAlmostReady:  "Your table is almost ready..",

	MsgIosCalendarInstructions: "We sent the email to you, open it and add the file to the calendar",
	MsgCalendarInstructions:    "Open the attached file to add the schedule to your calendar app",

	MsgNothingFound:       "No product/brand found by the query",
	MsgNoUserProducts:     "You did not add any product",
	MsgNoProductLink:      "No more information",
	MsgIncorrectVolume:    "Enter liters count, please",
	MsgIncorrectStartDate: "Enter the date as yyyy-mm-dd, please",
	MsgRestartFilters:     "Nothing matched, start the filters again",
	MsgProductAdded:       "Product added!",
	MsgProductRemoved:     "Product removed",
	MsgUnknownInput:       "Please use the suggested buttons",
}

// MessageText returns the EN default for a message key, falling back to the
// key itself so an unmapped key never renders as an empty prompt.
func MessageText(key string) string {
	if text, ok := MessageTexts[key]; ok {
		return text
	}
	return key
}
