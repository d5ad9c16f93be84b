package email

// Kind identifies an email template.
type Kind string

const (
	JobApplication Kind = "job_application"
	Inquiry        Kind = "inquiry"
	ThankYou       Kind = "thank_you"
	Complaint      Kind = "complaint"
	Invitation     Kind = "invitation"
	Apology        Kind = "apology"
	Request        Kind = "request"
	General        Kind = "general"
)

// blueprint holds the parts of one draft. Fields are text/template sources
// evaluated against Draft, so {{.Topic}} and {{.TopicTitle}} are available.
type blueprint struct {
	Kind         Kind
	Keywords     []string
	Subject      string
	Greeting     string
	Introduction string
	Body         string
	Closing      string
}

// blueprints are checked in order; the first whose keyword appears in the
// topic wins. The keyword-less general blueprint is always last.
var blueprints = []blueprint{
	{
		Kind:         JobApplication,
		Keywords:     []string{"job", "application", "resume", "interview", "position", "employment", "career", "vacancy"},
		Subject:      "Application for [Position] - [Your Name]",
		Greeting:     "Dear Hiring Manager,",
		Introduction: "I am writing to express my interest in the [Position] role advertised on your website. With my background in [relevant field] and experience in [relevant skills], I believe I would be a strong candidate for this position.",
		Body: "Throughout my career, I have developed expertise in [skill 1], [skill 2], and [skill 3]. In my previous role at [Company], I successfully [achievement 1] and [achievement 2], which resulted in [positive outcome].\n\n" +
			"I am particularly drawn to [Company Name] because of its [something specific about the company]. I am impressed by the company's [mention something about their products/services/culture], and I am excited about the possibility of contributing to your team.\n\n" +
			"Attached is my resume that details my experience and qualifications. I would welcome the opportunity to discuss how my skills align with your needs in an interview.",
		Closing: "Thank you for considering my application. I look forward to the possibility of working with your team.",
	},
	{
		Kind:         Inquiry,
		Keywords:     []string{"inquiry", "question", "information", "details", "query"},
		Subject:      "Inquiry: [Specific Topic]",
		Greeting:     "Hello,",
		Introduction: "I am writing to inquire about [specific subject of inquiry]. I would appreciate if you could provide me with some information regarding this matter.",
		Body: "Specifically, I would like to know the following:\n\n1. [Question 1]\n2. [Question 2]\n3. [Question 3]\n\n" +
			"The reason for my inquiry is [explain why you need this information]. Any information you can provide would be greatly appreciated.",
		Closing: "Thank you for your time and assistance. I look forward to your response.",
	},
	{
		Kind:         ThankYou,
		Keywords:     []string{"thank", "appreciation", "grateful", "gratitude"},
		Subject:      "Thank You for [Reason]",
		Greeting:     "Dear [Recipient],",
		Introduction: "I wanted to express my sincere gratitude for [what you're thanking them for].",
		Body: "Your [help/support/generosity/kindness] has made a significant difference in [how it affected you or the situation]. I truly appreciate the time and effort you dedicated to [specific action they took].\n\n" +
			"[Add a specific example or detail about how their actions helped you].",
		Closing: "Thank you once again for your [support/help/kindness]. It means a great deal to me.",
	},
	{
		Kind:         Complaint,
		Keywords:     []string{"complaint", "dissatisfied", "disappointed", "issue", "problem", "concern"},
		Subject:      "Complaint Regarding [Issue/Product/Service]",
		Greeting:     "Dear Customer Service Team,",
		Introduction: "I am writing to express my dissatisfaction with [product/service] that I [purchased/used] on [date].",
		Body: "The specific issues I encountered include:\n\n1. [Issue 1]\n2. [Issue 2]\n3. [Issue 3]\n\n" +
			"I have already attempted to resolve this matter by [mention previous attempts at resolution]. Unfortunately, these attempts have not resulted in a satisfactory solution.\n\n" +
			"As a loyal customer of [Company Name], I expected a higher quality of [product/service]. I would appreciate if you could [specify the desired resolution, such as replacement, refund, etc.].",
		Closing: "I look forward to your prompt attention to this matter and a satisfactory resolution.",
	},
	{
		Kind:         Invitation,
		Keywords:     []string{"invite", "invitation", "event", "meeting", "celebration", "party"},
		Subject:      "Invitation: [Event Name] - [Date]",
		Greeting:     "Dear [Recipient],",
		Introduction: "I would like to cordially invite you to [event name] on [date] at [time] at [location].",
		Body: "The occasion is [purpose of event], and your presence would make it even more special. The event will include [describe what will happen at the event, such as dinner, activities, etc.].\n\n" +
			"[Additional details about the event, such as dress code, what to bring, etc.]\n\n" +
			"Please RSVP by [deadline] by [how to RSVP].",
		Closing: "I hope you can join us for this special occasion. Looking forward to seeing you there!",
	},
	{
		Kind:         Apology,
		Keywords:     []string{"apology", "sorry", "regret", "apologize"},
		Subject:      "Apology for [Incident/Situation]",
		Greeting:     "Dear [Recipient],",
		Introduction: "I am writing to sincerely apologize for [describe the incident or situation that requires an apology].",
		Body: "I understand that my [actions/behavior/mistake] has caused [describe the impact it had on the recipient]. I take full responsibility for this error and deeply regret any inconvenience or distress it may have caused you.\n\n" +
			"The situation occurred because [brief explanation, not an excuse], but I understand this does not justify the outcome. To address this, I am taking steps to [describe how you're fixing the situation or preventing it from happening again].",
		Closing: "I value our [relationship/partnership] and hope that you can accept my sincere apology. I am committed to ensuring this does not happen again.",
	},
	{
		Kind:         Request,
		Keywords:     []string{"request", "favor", "assistance", "help"},
		Subject:      "Request for [What You're Requesting]",
		Greeting:     "Dear [Recipient],",
		Introduction: "I hope this email finds you well. I am writing to request your assistance with [briefly describe what you need].",
		Body: "Specifically, I am hoping that you could [provide detailed information about your request]. This would greatly help me with [explain why you need this].\n\n" +
			"[Provide any relevant background information or context for your request].\n\n" +
			"I understand that you are busy, and I appreciate any time you can spare for this matter. If there's any additional information you need from me to fulfill this request, please let me know.",
		Closing: "Thank you for considering my request. I look forward to your response.",
	},
	{
		Kind:         General,
		Subject:      "Regarding: {{.TopicTitle}}",
		Greeting:     "Hello,",
		Introduction: "I am writing to you regarding {{.Topic}}.",
		Body: "I wanted to discuss the matter of {{.Topic}} with you. This is an important topic that requires attention because [reason why the topic is important].\n\n" +
			"[Main point 1 about the topic]\n\n[Main point 2 about the topic]\n\n[Main point 3 about the topic]\n\n" +
			"Based on the above points, I believe that [conclusion or suggestion related to the topic].",
		Closing: "I hope this information is helpful. Please let me know if you have any questions or if there's anything else I can assist you with.",
	},
}
