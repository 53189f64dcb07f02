package bot

// Reply keyboard labels. Incoming text is matched against them verbatim.
const (
	LabelCatalog  = "Our catalog"
	LabelWarranty = "Warranty"
	LabelReturns  = "Returns"
	LabelOperator = "👨‍💼 Contact operator"
	LabelBack     = "⬅️ Back"
)

const (
	textWelcome = "Hello! 👋\n\n" +
		"This is the support bot of our store. Here you can browse the catalog, " +
		"get product manuals and talk to an operator.\n\n" +
		"Our stores on the marketplaces:"
	textChooseAction    = "Choose an action:"
	textNextAction      = "Choose your next action:"
	textMainMenu        = "Main menu:"
	textChooseBrand     = "Choose a brand:"
	textChooseCategory  = "Choose a %s category:"
	textChooseProduct   = "Choose a product from %s:"
	textNoBrands        = "The catalog is empty for now."
	textNoCategories    = "There are no categories for brand %s."
	textNoProducts      = "There are no products in category %s."
	textProductNotFound = "Information about product %s was not found."
	textDeliveryFailed  = "An error occurred while loading product %s."
	textSomethingWrong  = "Something went wrong. Please try again."

	textChatStarted  = "You are connected to an operator. Type your question:"
	textChatLeft     = "You left the operator chat."
	textRelayed      = "Your message was sent to an operator. Please wait for a reply."
	textNoOperators  = "Sorry, no operators are available right now. Please try later."
	textOperatorMsg  = "📩 New message from a user:\n\n👤 <b>%s</b>\n🆔 <code>%d</code>\n💬 %s\n\nTo answer:\n<code>/reply %d your answer</code>"
	textOperatorHead = "📩 Reply from operator:\n\n"

	textReplyUsage   = "Usage: /reply <user_id> <text>"
	textReplyBadUser = "❌ User id must be a number."
	textReplySent    = "✅ Reply sent to user %d."
	textReplyFailed  = "❌ Could not deliver the reply: %s"

	textPermissionDenied = "⛔ Permission denied."
	textAddUsage         = "Usage: /add_product [brand] [category] [name] [message_id] [ozon:link wb:link ym:link] [photo_id]"
	textAddBadMessageRef = "❌ Message id must be an integer."
	textAddBadPhotoRef   = "❌ Photo id must be an integer."
	textAddBadName       = "❌ Brand, category and name must not be empty."
	textAddFailed        = "❌ Could not add the product."
	textAddDone          = "✅ Product added:\n\nBrand: %s\nCategory: %s\nName: %s\nMessage id: %d"
	textDeleteUsage      = "Usage: /delete_product [brand] [category] [name]"
	textDeleteDone       = "✅ Product '%s' removed from category '%s' of brand '%s'."
	textDeleteNotFound   = "❌ Product '%s' in category '%s' of brand '%s' not found."
	textDeleteFailed     = "❌ Could not delete the product."
)

const textWarranty = "*Warranty*\n\n" +
	"All products come with the manufacturer's warranty. The warranty period is stated " +
	"on the product page and in the warranty card.\n\n" +
	"*What is covered:* manufacturing defects that show up during normal use.\n\n" +
	"*What is not covered:* mechanical damage, liquid damage, repairs by third parties " +
	"and use contrary to the manual.\n\n" +
	"To make a warranty claim, contact an operator from the main menu and describe " +
	"the problem. Keep the receipt and the original packaging."

const textReturns = "*Returns*\n\n" +
	"Goods of proper quality can be returned within the period set by the marketplace " +
	"you bought them on, provided the packaging, labels and receipt are kept.\n\n" +
	"Defective goods are returned or replaced through the marketplace's return form. " +
	"Attach photos of the defect.\n\n" +
	"If the marketplace refuses the return, contact an operator from the main menu."
