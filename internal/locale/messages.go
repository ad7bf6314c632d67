// ABOUTME: Message tables for the strings the client itself shows
// ABOUTME: Registered into an x/text catalog per supported language

package locale

var arabicMessages = map[string]string{
	"nav.dashboard": "الرئيسية",
	"nav.leads":     "العملاء المحتملين",
	"nav.campaigns": "الحملات",
	"nav.logout":    "تسجيل الخروج",

	"dashboard.welcome":         "مرحباً",
	"dashboard.overview":        "إليك نظرة عامة على أداء مبيعاتك",
	"dashboard.leads":           "العملاء المحتملين",
	"dashboard.messagesSent":    "الرسائل المرسلة",
	"dashboard.replies":         "الردود",
	"dashboard.activeCampaigns": "الحملات النشطة",
	"dashboard.replyRate":       "معدل الرد",
	"dashboard.activity":        "آخر النشاطات",
	"dashboard.leadsByScore":    "العملاء حسب التقييم",
	"dashboard.leadsByStatus":   "العملاء حسب الحالة",
	"dashboard.highScore":       "تقييم عالي (7-10)",
	"dashboard.mediumScore":     "تقييم متوسط (4-6)",
	"dashboard.lowScore":        "تقييم منخفض (0-3)",
	"dashboard.thisMonth":       "هذا الشهر",

	"status.new":       "جديد",
	"status.contacted": "تم التواصل",
	"status.replied":   "رد",
	"status.converted": "تحويل",
	"status.archived":  "مؤرشف",

	"status.meeting_scheduled": "تم جدولة اجتماع",
	"status.not_interested":    "غير مهتم",

	"leads.title":    "العملاء المحتملين",
	"leads.company":  "الشركة",
	"leads.industry": "المجال",
	"leads.score":    "التقييم",
	"leads.status":   "الحالة",
	"leads.noLeads":  "لا يوجد عملاء محتملين. ابدأ بإضافة أو استيراد بيانات.",
	"leads.page":     "صفحة",
	"leads.of":       "من",

	"campaigns.title":         "الحملات",
	"campaigns.noCampaigns":   "لا توجد حملات بعد",
	"campaigns.draft":         "مسودة",
	"campaigns.active":        "نشطة",
	"campaigns.paused":        "متوقفة",
	"campaigns.completed":     "مكتملة",
	"campaigns.targeted":      "العملاء المستهدفين",
	"campaigns.replies":       "الردود",
	"campaigns.meetings":      "الاجتماعات",
	"campaigns.noDescription": "بدون وصف",

	"auth.login":          "تسجيل الدخول",
	"auth.register":       "إنشاء حساب",
	"auth.email":          "البريد الإلكتروني",
	"auth.password":       "كلمة المرور",
	"auth.name":           "الاسم الكامل",
	"auth.companyName":    "اسم الشركة",
	"auth.loggingIn":      "جاري الدخول...",
	"auth.registering":    "جاري التسجيل...",
	"auth.noAccount":      "ليس لديك حساب؟",
	"auth.hasAccount":     "لديك حساب؟",
	"auth.tagline":        "منصة المبيعات الذكية",
	"auth.loginFailed":    "فشل تسجيل الدخول",
	"auth.registerFailed": "فشل إنشاء الحساب",
	"auth.sessionExpired": "انتهت الجلسة، يرجى تسجيل الدخول مرة أخرى",
	"auth.loggedOut":      "تم تسجيل الخروج",

	"ai.scoring": "جاري التقييم...",
	"ai.score":   "تقييم بالذكاء الاصطناعي",

	"common.loading":  "جاري التحميل...",
	"common.error":    "حدث خطأ",
	"common.cancel":   "إلغاء",
	"common.back":     "رجوع",
	"common.language": "اللغة",

	"keys.refresh":  "تحديث",
	"keys.quit":     "خروج",
	"keys.score":    "تقييم",
	"keys.page":     "الصفحة",
	"keys.switch":   "تبديل",
	"keys.navigate": "تنقل",
	"keys.updated":  "آخر تحديث",
	"keys.justNow":  "الآن",
}

var englishMessages = map[string]string{
	"nav.dashboard": "Dashboard",
	"nav.leads":     "Leads",
	"nav.campaigns": "Campaigns",
	"nav.logout":    "Logout",

	"dashboard.welcome":         "Welcome",
	"dashboard.overview":        "Here's an overview of your sales performance",
	"dashboard.leads":           "Leads",
	"dashboard.messagesSent":    "Messages Sent",
	"dashboard.replies":         "Replies",
	"dashboard.activeCampaigns": "Active Campaigns",
	"dashboard.replyRate":       "Reply Rate",
	"dashboard.activity":        "Recent Activity",
	"dashboard.leadsByScore":    "Leads by Score",
	"dashboard.leadsByStatus":   "Leads by Status",
	"dashboard.highScore":       "High Score (7-10)",
	"dashboard.mediumScore":     "Medium Score (4-6)",
	"dashboard.lowScore":        "Low Score (0-3)",
	"dashboard.thisMonth":       "this month",

	"status.new":       "New",
	"status.contacted": "Contacted",
	"status.replied":   "Replied",
	"status.converted": "Converted",
	"status.archived":  "Archived",

	"status.meeting_scheduled": "Meeting Scheduled",
	"status.not_interested":    "Not Interested",

	"leads.title":    "Leads",
	"leads.company":  "Company",
	"leads.industry": "Industry",
	"leads.score":    "Score",
	"leads.status":   "Status",
	"leads.noLeads":  "No leads yet. Start by adding or importing data.",
	"leads.page":     "Page",
	"leads.of":       "of",

	"campaigns.title":         "Campaigns",
	"campaigns.noCampaigns":   "No campaigns yet",
	"campaigns.draft":         "Draft",
	"campaigns.active":        "Active",
	"campaigns.paused":        "Paused",
	"campaigns.completed":     "Completed",
	"campaigns.targeted":      "Targeted Leads",
	"campaigns.replies":       "Replies",
	"campaigns.meetings":      "Meetings",
	"campaigns.noDescription": "No description",

	"auth.login":          "Login",
	"auth.register":       "Create Account",
	"auth.email":          "Email",
	"auth.password":       "Password",
	"auth.name":           "Full Name",
	"auth.companyName":    "Company Name",
	"auth.loggingIn":      "Logging in...",
	"auth.registering":    "Creating account...",
	"auth.noAccount":      "Don't have an account?",
	"auth.hasAccount":     "Already have an account?",
	"auth.tagline":        "Smart Sales Platform",
	"auth.loginFailed":    "Login failed",
	"auth.registerFailed": "Registration failed",
	"auth.sessionExpired": "Session expired, please log in again",
	"auth.loggedOut":      "Logged out",

	"ai.scoring": "Scoring...",
	"ai.score":   "AI Score",

	"common.loading":  "Loading...",
	"common.error":    "An error occurred",
	"common.cancel":   "Cancel",
	"common.back":     "Back",
	"common.language": "Language",

	"keys.refresh":  "Refresh",
	"keys.quit":     "Quit",
	"keys.score":    "Score",
	"keys.page":     "Page",
	"keys.switch":   "Switch",
	"keys.navigate": "Navigate",
	"keys.updated":  "Updated",
	"keys.justNow":  "just now",
}
